package main

import (
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/deadroad/config"
	"github.com/pthm-cable/deadroad/game"
	"github.com/pthm-cable/deadroad/session"
)

// FitnessEvaluator runs headless episodes and scores how far their survival
// is from the target share.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config
	target     float64 // wanted mean survival share in [0, 1]

	mu           sync.Mutex
	lastSurvival float64
	lastWins     int
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// LastSurvival returns the mean survival share and win count of the most
// recent evaluation.
func (fe *FitnessEvaluator) LastSurvival() (float64, int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSurvival, fe.lastWins
}

// runResult holds the results from a single episode.
type runResult struct {
	survival float64 // share of the tick cap survived
	won      bool
	err      error
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// squared distance of the mean survival share from the target plus the
// spread across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel; games share nothing
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runEpisode(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	survival := make([]float64, 0, len(results))
	wins := 0
	for _, r := range results {
		if r.err != nil {
			// a config that cannot load the scenario is as bad as it gets
			return 1e9
		}
		survival = append(survival, r.survival)
		if r.won {
			wins++
		}
	}

	mean, variance := stat.MeanVariance(survival, nil)
	if len(survival) < 2 {
		variance = 0
	}

	fe.mu.Lock()
	fe.lastSurvival = mean
	fe.lastWins = wins
	fe.mu.Unlock()

	d := mean - fe.target
	return d*d + 0.5*variance
}

// runEpisode plays one autopilot episode with traffic and reports the share
// of the tick cap the dude survived. A win counts as full survival.
func (fe *FitnessEvaluator) runEpisode(cfg *config.Config, seed int64) runResult {
	s, err := session.New(cfg, session.Options{Seed: seed, Traffic: true})
	if err != nil {
		return runResult{err: err}
	}

	ep := s.RunEpisode(fe.maxTicks)
	if ep == nil {
		return runResult{survival: 1}
	}
	if ep.Outcome == game.StateWon.String() {
		return runResult{survival: 1, won: true}
	}
	return runResult{survival: clamp01(float64(ep.EndTick) / float64(fe.maxTicks))}
}

// copyConfig creates a copy of the base config. Scenario sprites are shared
// and never written.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
