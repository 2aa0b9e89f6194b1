// Package suggest orchestrates the version decision pipeline: signal
// extraction, delta calculation, tier classification, and version
// arithmetic. Each stage is a pure function of its inputs; this package
// only wires them together over a repository.
package suggest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/nextver/nextver/internal/cache"
	"github.com/nextver/nextver/internal/vcs"
	"github.com/nextver/nextver/pkg/analyzer/score"
	"github.com/nextver/nextver/pkg/analyzer/signals"
	"github.com/nextver/nextver/pkg/config"
	"github.com/nextver/nextver/pkg/semver"
)

// Analyzer runs the decision pipeline for one (base, target) pair.
type Analyzer struct {
	cfg            config.Config
	opener         vcs.Opener
	cache          *cache.Cache
	currentVersion string
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithConfig sets the resolved configuration.
func WithConfig(cfg config.Config) Option {
	return func(a *Analyzer) {
		a.cfg = cfg
	}
}

// WithOpener sets the VCS opener (useful for testing).
func WithOpener(opener vcs.Opener) Option {
	return func(a *Analyzer) {
		a.opener = opener
	}
}

// WithCache sets the signal cache. Without one, signals are always
// extracted from the repository.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// WithCurrentVersion overrides the version file lookup.
func WithCurrentVersion(version string) Option {
	return func(a *Analyzer) {
		a.currentVersion = version
	}
}

// New creates a new version decision analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:    config.DefaultConfig(),
		opener: vcs.DefaultOpener(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze resolves both refs, extracts change signals, and produces the
// version decision. An empty base ref means the empty tree, which covers
// the empty-repository and first-commit cases.
func (a *Analyzer) Analyze(ctx context.Context, repoPath, base, target string) (*score.Decision, error) {
	repo, err := a.opener.PlainOpenWithDetect(repoPath)
	if err != nil {
		return nil, err
	}

	baseHash, err := repo.ResolveRef(base)
	if err != nil {
		return nil, err
	}
	targetHash, err := repo.ResolveRef(target)
	if err != nil {
		return nil, err
	}

	sig, err := a.extractSignals(ctx, repo, baseHash, targetHash)
	if err != nil {
		return nil, err
	}

	current := semver.ParseOrZero(a.resolveCurrentVersion(repoPath))

	scores := score.Calculate(sig, a.cfg.Tiers)
	tier := score.Classify(scores, sig, a.cfg.Tiers)

	decision := &score.Decision{
		Suggestion:     tier,
		CurrentVersion: current.String(),
		TotalBonus:     selectedBonus(scores, tier),
		LOCDelta: score.LOCDelta{
			PatchDelta: scores.Patch.TotalDelta,
			MinorDelta: scores.Minor.TotalDelta,
			MajorDelta: scores.Major.TotalDelta,
		},
		NoChanges: tier == score.TierNone,
		BaseRef:   baseHash,
		TargetRef: targetHash,
		Signals:   sig,
		Scores:    scores,
	}

	next := score.NextVersion(current, tier, decision.SelectedDelta(), a.cfg.Versioning.Modulus)
	decision.NextVersion = next.String()

	return decision, nil
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	// No resources to release
}

// extractSignals reads the diff and commit messages and builds the signal
// record, short-circuiting through the cache when possible. Only the
// extraction stage is cached; scoring depends on tier configuration and
// always runs.
func (a *Analyzer) extractSignals(ctx context.Context, repo vcs.Repository, baseHash, targetHash string) (signals.Signals, error) {
	key := a.cacheKey(baseHash, targetHash)

	if a.cache != nil {
		if data, ok := a.cache.Get(key); ok {
			var sig signals.Signals
			if err := json.Unmarshal(data, &sig); err == nil {
				return sig, nil
			}
		}
	}

	files, err := repo.DiffFiles(ctx, baseHash, targetHash)
	if err != nil {
		return signals.Signals{}, err
	}
	messages, err := repo.CommitMessages(ctx, baseHash, targetHash)
	if err != nil {
		return signals.Signals{}, err
	}

	sig := signals.Extract(files, messages, a.cfg.Rules, a.cfg.Markers)

	if a.cache != nil {
		if data, err := json.Marshal(sig); err == nil {
			_ = a.cache.Set(key, data)
		}
	}
	return sig, nil
}

// cacheKey encodes everything extraction depends on: both resolved hashes
// and the classification rule and marker tables.
func (a *Analyzer) cacheKey(baseHash, targetHash string) string {
	rules, _ := json.Marshal(a.cfg.Rules)
	markers, _ := json.Marshal(a.cfg.Markers)
	return cache.Key(baseHash, targetHash, string(rules), string(markers))
}

// resolveCurrentVersion returns the explicit override when set, otherwise
// the contents of the version file. A missing or malformed version falls
// back to the zero version, which triggers the bootstrap path.
func (a *Analyzer) resolveCurrentVersion(repoPath string) string {
	if a.currentVersion != "" {
		return a.currentVersion
	}
	data, err := os.ReadFile(filepath.Join(repoPath, a.cfg.Versioning.File))
	if err != nil {
		return ""
	}
	return string(data)
}

func selectedBonus(scores score.Scores, tier score.Tier) int {
	switch tier {
	case score.TierMajor:
		return scores.Major.TotalBonus
	case score.TierMinor:
		return scores.Minor.TotalBonus
	case score.TierPatch:
		return scores.Patch.TotalBonus
	default:
		return 0
	}
}
