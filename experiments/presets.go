package experiments

import (
	"context"
	"time"

	"mctsgames/experiments/metrics"
	"mctsgames/meta"
)

// Names of the preset experiments.
var Presets = map[string]func(ctx context.Context, game, outDir string) (Results, error){
	"strength":    RunStrengthExperiment,
	"think_time":  RunThinkTimeExperiment,
	"temperature": RunTemperatureExperiment,
}

// RunStrengthExperiment pairs MCTS agents with growing think times against
// the random baseline.
func RunStrengthExperiment(ctx context.Context, game, outDir string) (Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: metrics.RandomAgent}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: metrics.MCTSAgent, Duration: meta.ExperimentTimeBudget},
		{ID: 2, Kind: metrics.MCTSAgent, Duration: 5 * meta.ExperimentTimeBudget},
		{ID: 3, Kind: metrics.MCTSAgent, Duration: 25 * meta.ExperimentTimeBudget},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Run(ctx, Experiment{
		Name:     "strength",
		Game:     game,
		Configs:  append(configs, baseline),
		MatchUps: matchUps,
		OutDir:   outDir,
	})
}

// RunThinkTimeExperiment pairs agents with longer think times against the
// shortest one.
func RunThinkTimeExperiment(ctx context.Context, game, outDir string) (Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: metrics.MCTSAgent, Duration: meta.ExperimentTimeBudget}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: metrics.MCTSAgent, Duration: baseline.Duration}, // Baseline equivalent
		{ID: 2, Kind: metrics.MCTSAgent, Duration: 2 * baseline.Duration},
		{ID: 3, Kind: metrics.MCTSAgent, Duration: 4 * baseline.Duration},
		{ID: 4, Kind: metrics.MCTSAgent, Duration: 100 * time.Millisecond},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Run(ctx, Experiment{
		Name:     "think_time",
		Game:     game,
		Configs:  append(configs, baseline),
		MatchUps: matchUps,
		OutDir:   outDir,
	})
}

// RunTemperatureExperiment measures how much sampling moves by visit counts
// costs against playing the most visited move.
func RunTemperatureExperiment(ctx context.Context, game, outDir string) (Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: metrics.MCTSAgent, Duration: meta.ExperimentTimeBudget}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: metrics.MCTSAgent, Duration: baseline.Duration, Temperature: 0.25},
		{ID: 2, Kind: metrics.MCTSAgent, Duration: baseline.Duration, Temperature: 1},
		{ID: 3, Kind: metrics.MCTSAgent, Duration: baseline.Duration, Temperature: 2},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Run(ctx, Experiment{
		Name:     "temperature",
		Game:     game,
		Configs:  append(configs, baseline),
		MatchUps: matchUps,
		OutDir:   outDir,
	})
}
