package experiments

import (
	"context"
	"fmt"

	"mctsgames/engine"
	"mctsgames/experiments/metrics"
	"mctsgames/game"
	"mctsgames/game/connect4"
	"mctsgames/game/tictactoe"
	"mctsgames/meta"
	"mctsgames/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Experiment plays every matchup GamesPerMatchup times, alternating the
// starting agent, and writes the records under OutDir.
type Experiment struct {
	Name            string
	Game            string // "tictactoe" or "connect4"
	Configs         []metrics.AgentConfig
	MatchUps        [][2]metrics.AgentConfig
	GamesPerMatchup int
	Concurrency     int
	OutDir          string // no files are written when empty
}

// Summary counts the outcomes of one matchup.
type Summary struct {
	Agent1, Agent2 int // AgentConfig.ID
	Wins1, Wins2   int
	Draws          int
}

type Results struct {
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []Summary
	Dir       string
}

type gameOutcome struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
}

func Run(ctx context.Context, e Experiment) (Results, error) {
	if e.GamesPerMatchup <= 0 {
		e.GamesPerMatchup = meta.GamesPerMatchup
	}
	if e.Concurrency <= 0 {
		e.Concurrency = meta.MaxConcurrentGames
	}
	play, ok := games[e.Game]
	if !ok {
		return Results{}, fmt.Errorf("unknown game %q", e.Game)
	}
	for _, matchup := range e.MatchUps {
		for _, config := range matchup {
			if err := validate(config); err != nil {
				return Results{}, err
			}
		}
	}

	log.Info().Msgf("starting %s experiment on %s...", e.Name, e.Game)

	outcomes := make([]gameOutcome, len(e.MatchUps)*e.GamesPerMatchup)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Concurrency)
	for mi, matchup := range e.MatchUps {
		for i := 0; i < e.GamesPerMatchup; i++ {
			id := mi*e.GamesPerMatchup + i + 1
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				// Alternate which agent moves first
				first, second := matchup[0], matchup[1]
				if i%2 == 1 {
					first, second = second, first
				}
				gameMetric, moveMetrics, err := play(first, second, uint64(id))
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				outcomes[id-1] = newOutcome(id, matchup, first, second, gameMetric, moveMetrics)
				log.Info().Msgf("completed matchup %d of %d game %d of %d: %v",
					mi+1, len(e.MatchUps), i+1, e.GamesPerMatchup, gameMetric.Result)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Results{}, err
	}

	results := Results{}
	for _, outcome := range outcomes {
		results.Games = append(results.Games, outcome.record)
		results.Moves = append(results.Moves, outcome.moves...)
	}
	results.Summaries = summarize(e.MatchUps, results.Games)
	for _, s := range results.Summaries {
		log.Info().Msgf("agent %d vs agent %d: %d-%d with %d draws", s.Agent1, s.Agent2, s.Wins1, s.Wins2, s.Draws)
	}
	log.Info().Msgf("completed %s experiment", e.Name)

	if e.OutDir == "" {
		return results, nil
	}
	dir, err := store(e, results)
	results.Dir = dir
	return results, err
}

func newOutcome(id int, matchup [2]metrics.AgentConfig, first, second metrics.AgentConfig,
	gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric) gameOutcome {
	gameMetric.StartingAgent = first.ID
	if winner, ok := gameMetric.Result.Winner(); ok {
		gameMetric.Winner = first.ID
		if winner == game.PlayerTwo {
			gameMetric.Winner = second.ID
		}
	}

	outcome := gameOutcome{record: metrics.GameRecord{
		ID:         id,
		Agent1:     matchup[0].ID,
		Agent2:     matchup[1].ID,
		GameMetric: gameMetric,
	}}
	for _, mm := range moveMetrics {
		agentID := first.ID
		if mm.Player == game.PlayerTwo {
			agentID = second.ID
		}
		outcome.moves = append(outcome.moves, metrics.MoveRecord{Game: id, Agent: agentID, MoveMetric: mm})
	}
	return outcome
}

func summarize(matchUps [][2]metrics.AgentConfig, records []metrics.GameRecord) []Summary {
	summaries := make([]Summary, len(matchUps))
	perMatchup := len(records) / max(len(matchUps), 1)
	for mi, matchup := range matchUps {
		s := Summary{Agent1: matchup[0].ID, Agent2: matchup[1].ID}
		for _, record := range records[mi*perMatchup : (mi+1)*perMatchup] {
			switch {
			case record.Result == game.Draw:
				s.Draws++
			case record.Winner == s.Agent1:
				s.Wins1++
			default:
				s.Wins2++
			}
		}
		summaries[mi] = s
	}
	return summaries
}

func store(e Experiment, results Results) (string, error) {
	writer, err := metrics.NewWriter(e.OutDir, e.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(e.Configs); err != nil {
		return writer.Dir(), fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(results.Games); err != nil {
		return writer.Dir(), fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return writer.Dir(), fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return writer.Dir(), nil
}

func validate(config metrics.AgentConfig) error {
	switch config.Kind {
	case metrics.RandomAgent:
		return nil
	case metrics.MCTSAgent:
		if config.Duration <= 0 && config.Episodes <= 0 {
			return fmt.Errorf("agent %d needs a duration or an episode budget", config.ID)
		}
		return nil
	}
	return fmt.Errorf("agent %d has unknown kind %q", config.ID, config.Kind)
}

type playFunc func(first, second metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error)

var games = map[string]playFunc{
	"tictactoe": func(first, second metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
		return runGame[tictactoe.Move](tictactoe.New(), first, second, seed)
	},
	"connect4": func(first, second metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
		return runGame[connect4.Move](connect4.New(), first, second, seed)
	},
}

// runGame executes a single game between two agents. seed varies the games
// of agents whose config has no seed of its own.
func runGame[M comparable, S game.State[M, S]](start S, first, second metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.NewLocalEngine[M](start, createAgent[M, S](first, seed), createAgent[M, S](second, seed+(1<<32)))
	return e.Run()
}

func createAgent[M comparable, S game.State[M, S]](config metrics.AgentConfig, seed uint64) agent.Agent[M, S] {
	if config.Seed != 0 {
		seed = config.Seed + seed
	}
	if config.Kind == metrics.RandomAgent {
		return agent.NewRandomAgent[M, S](seed)
	}

	options := []agent.Option{agent.WithSeed(seed)}
	if config.Episodes > 0 {
		options = append(options, agent.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, agent.WithDuration(config.Duration))
	}
	if config.Temperature > 0 {
		return agent.NewTrainingAgent[M, S](config.Temperature, options...)
	}
	return agent.NewEvaluationAgent[M, S](options...)
}
