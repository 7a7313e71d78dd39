package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"mctsgames/communication"
	"mctsgames/communication/client"
	"mctsgames/communication/server"
	"mctsgames/engine"
	"mctsgames/experiments"
	"mctsgames/game"
	"mctsgames/game/connect4"
	"mctsgames/game/tictactoe"
	"mctsgames/gamemaster"
	"mctsgames/meta"
	"mctsgames/player"
	"mctsgames/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: mctsgames <command> [flags]

commands:
  serve       host games against the bot over HTTP
  play        play against the bot in the terminal
  selfplay    let the bot play itself
  experiment  run a preset experiment and write CSV records
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "selfplay":
		err = runSelfPlay(os.Args[2:])
	case "experiment":
		err = runExperiment(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		log.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	return nil
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	level := fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	return fs, level
}

func gameFlag(fs *flag.FlagSet) *string {
	return fs.String("game", "tictactoe", "Game to play ("+strings.Join(gamemaster.Kinds(), ", ")+")")
}

func checkGame(kind string) error {
	if !slices.Contains(gamemaster.Kinds(), kind) {
		return fmt.Errorf("%w: %q", gamemaster.ErrUnknownGame, kind)
	}
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs, level := newFlagSet("serve")
	port := fs.Int("port", meta.Port, "Port to listen on")
	think := fs.Duration("think", meta.ThinkTime, "Bot think time per move")
	episodes := fs.Int("episodes", 0, "Bot playout cap per move (0 for none)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := setupLogging(*level); err != nil {
		return err
	}

	manager := gamemaster.NewManager(
		gamemaster.WithThinkTime(*think),
		gamemaster.WithEpisodes(*episodes),
		gamemaster.WithLogger(log.Logger),
	)
	err := server.New(manager, log.Logger).Start(ctx, fmt.Sprintf(":%d", *port))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runPlay(ctx context.Context, args []string) error {
	fs, level := newFlagSet("play")
	kind := gameFlag(fs)
	serverURL := fs.String("server", "", "Game server URL, empty to play in process")
	first := fs.Bool("first", true, "Move first")
	think := fs.Duration("think", meta.ThinkTime, "Bot think time per move when playing in process")
	auto := fs.Bool("auto", false, "Let a local MCTS agent play your side")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := setupLogging(*level); err != nil {
		return err
	}
	if err := checkGame(*kind); err != nil {
		return err
	}

	var comm communication.Communicator
	if *serverURL != "" {
		comm = client.NewHTTPCommunicator(*serverURL, nil)
	} else {
		manager := gamemaster.NewManager(gamemaster.WithThinkTime(*think), gamemaster.WithLogger(log.Logger))
		defer manager.Shutdown()
		comm = manager
	}

	if *auto {
		view, err := runController(ctx, comm, *kind, *first, *think)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %v\n", view.ID, view.Result)
		return nil
	}
	_, err := player.NewPlayer(comm, os.Stdin, os.Stdout).Play(ctx, *kind, *first)
	return err
}

func runController(ctx context.Context, comm communication.Communicator, kind string, first bool, think time.Duration) (communication.View, error) {
	if kind == "connect4" {
		a := agent.NewEvaluationAgent[connect4.Move, connect4.State](agent.WithDuration(think))
		return player.NewController[connect4.Move](comm, a).Run(ctx, kind, first)
	}
	a := agent.NewEvaluationAgent[tictactoe.Move, tictactoe.State](agent.WithDuration(think))
	return player.NewController[tictactoe.Move](comm, a).Run(ctx, kind, first)
}

func runSelfPlay(args []string) error {
	fs, level := newFlagSet("selfplay")
	kind := gameFlag(fs)
	think := fs.Duration("think", meta.ThinkTime, "Think time per move")
	episodes := fs.Int("episodes", 0, "Playout cap per move (0 for none)")
	seed := fs.Uint64("seed", 0, "Random seed (0 for the clock)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := setupLogging(*level); err != nil {
		return err
	}
	if err := checkGame(*kind); err != nil {
		return err
	}

	var options []agent.Option
	if *think > 0 {
		options = append(options, agent.WithDuration(*think))
	}
	if *episodes > 0 {
		options = append(options, agent.WithEpisodes(*episodes))
	}
	if *seed != 0 {
		options = append(options, agent.WithSeed(*seed))
	}
	options = append(options, agent.WithLogger(log.Logger))

	if *kind == "connect4" {
		return selfPlay[connect4.Move](connect4.New(), options)
	}
	return selfPlay[tictactoe.Move](tictactoe.New(), options)
}

func selfPlay[M comparable, S interface {
	game.State[M, S]
	fmt.Stringer
}](start S, options []agent.Option) error {
	e := engine.NewLocalEngine[M](start,
		agent.NewEvaluationAgent[M, S](options...),
		agent.NewEvaluationAgent[M, S](options...),
	)
	gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return err
	}
	for _, mm := range moveMetrics {
		log.Info().
			Int("step", mm.Step).
			Stringer("player", mm.Player).
			Str("move", mm.Move).
			Int("episodes", mm.Episodes).
			Bool("tree_reused", mm.IsTreeReused).
			Msg("move")
	}
	fmt.Println(e.State)
	log.Info().Msgf("game over after %d moves in %v: %v", gameMetric.TotalMoves, gameMetric.Duration, gameMetric.Result)
	return nil
}

func runExperiment(ctx context.Context, args []string) error {
	fs, level := newFlagSet("experiment")
	kind := gameFlag(fs)
	name := fs.String("name", "strength", "Preset experiment to run")
	out := fs.String("out", "results", "Directory for CSV records")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := setupLogging(*level); err != nil {
		return err
	}
	if err := checkGame(*kind); err != nil {
		return err
	}

	run, ok := experiments.Presets[*name]
	if !ok {
		return fmt.Errorf("unknown experiment %q", *name)
	}
	_, err := run(ctx, *kind, *out)
	return err
}
