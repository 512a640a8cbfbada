package main

import (
	"math"
	"sync"

	"github.com/rill-engine/rill/config"
	"github.com/rill-engine/rill/game"
	"github.com/rill-engine/rill/telemetry"
)

// FitnessEvaluator runs headless simulations and scores how well the fluid
// settles: a good parameter set lets the particles come to rest near rest
// density without exploding or jittering against the walls.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastSettled float64 // settledness from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 2.0,
	}
}

// LastSettled returns the settledness score from the most recent evaluation.
func (fe *FitnessEvaluator) LastSettled() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSettled
}

// Scoring weights. Kinetic energy dominates; density error differentiates
// parameter sets that are equally calm.
const (
	weightKinetic    = 1.0
	weightDensityErr = 0.5
	weightDensityStd = 0.25

	// Windows skipped before scoring so the initial collapse does not count.
	warmupWindows = 2

	// A blown-up run returns this instead of a score.
	divergedPenalty = 1e6
)

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]float64, len(fe.seeds))
	settled := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx], settled[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalSettled float64
	for i := range results {
		totalFitness += results[i]
		totalSettled += settled[i]
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastSettled = totalSettled / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes one headless run and scores its stats windows.
// Returns the fitness and a settledness score in [0, 1].
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (fitness, settled float64) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats

	g, err := game.NewGame(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return divergedPenalty, 0
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	return fe.scoreWindows(windows, cfg.Fluid.RestDensity)
}

// scoreWindows reduces the collected stats windows to a scalar fitness.
func (fe *FitnessEvaluator) scoreWindows(windows []telemetry.WindowStats, restDensity float64) (fitness, settled float64) {
	if len(windows) <= warmupWindows {
		return divergedPenalty, 0
	}
	valid := windows[warmupWindows:]

	var sum float64
	for _, w := range valid {
		if math.IsNaN(w.KineticEnergy) || math.IsInf(w.KineticEnergy, 0) || w.MaxSpeed > 1e3 {
			return divergedPenalty, 0
		}

		kePerParticle := w.KineticEnergy / float64(w.ParticleCount)
		densityErr := math.Abs(w.DensityMean/restDensity - 1.0)
		densitySpread := w.DensityStd / restDensity

		sum += weightKinetic*kePerParticle +
			weightDensityErr*densityErr +
			weightDensityStd*densitySpread
	}

	fitness = sum / float64(len(valid))

	// Settledness: kinetic energy of the final window mapped onto [0, 1].
	last := valid[len(valid)-1]
	keFinal := last.KineticEnergy / float64(last.ParticleCount)
	settled = math.Exp(-keFinal)

	return fitness, settled
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg, _ := config.Load("")

	cfg.Screen = fe.baseConfig.Screen
	cfg.Physics = fe.baseConfig.Physics
	cfg.Fluid = fe.baseConfig.Fluid
	cfg.Scene = fe.baseConfig.Scene
	cfg.Fracture = fe.baseConfig.Fracture
	cfg.Telemetry = fe.baseConfig.Telemetry
	cfg.Derived = fe.baseConfig.Derived

	return cfg
}
