package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mctsgames/communication"
	"mctsgames/game"
	"mctsgames/gamemaster"

	"github.com/muesli/termenv"
)

// Player is a human at a terminal playing against the bot through a
// Communicator, local or remote.
type Player struct {
	Communicator communication.Communicator
	in           *bufio.Scanner
	out          *termenv.Output
}

// NewPlayer reads moves from in and draws boards on out.
func NewPlayer(comm communication.Communicator, in io.Reader, out io.Writer, options ...termenv.OutputOption) *Player {
	return &Player{
		Communicator: comm,
		in:           bufio.NewScanner(in),
		out:          termenv.NewOutput(out, options...),
	}
}

// Play runs one game of kind till it is over and returns its result.
func (p *Player) Play(ctx context.Context, kind string, humanFirst bool) (game.Result, error) {
	r, ok := kinds[kind]
	if !ok {
		return game.InProgress, fmt.Errorf("%w: %q", gamemaster.ErrUnknownGame, kind)
	}
	view, err := p.Communicator.NewGame(ctx, kind, humanFirst)
	if err != nil {
		return game.InProgress, err
	}
	p.printf("playing %s as %s\n", kind, p.styled(view.Human, view.Human.String()))

	shown := -1
	for {
		if view.Version != shown {
			if err := p.show(r, view); err != nil {
				return game.InProgress, err
			}
			shown = view.Version
		}
		if view.Result.Over() {
			p.printf("%s\n", p.outcome(view))
			return view.Result, nil
		}

		if !view.HumanToMove() {
			p.printf("bot is thinking...\n")
			view, err = p.Communicator.State(ctx, view.ID, view.Version)
			if err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return game.InProgress, err
			}
			continue
		}

		move, err := p.readMove(r)
		if err != nil {
			return game.InProgress, err
		}
		next, err := p.Communicator.Play(ctx, view.ID, move)
		switch {
		case errors.Is(err, game.ErrIllegalMove), errors.Is(err, gamemaster.ErrNotYourTurn):
			p.printf("%s\n", p.out.String(err.Error()).Foreground(p.out.Color("1")).String())
			continue
		case err != nil:
			return game.InProgress, err
		}
		view = next
	}
}

func (p *Player) readMove(r rules) ([]byte, error) {
	for {
		p.printf("%s: ", r.prompt)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return nil, err
			}
			return nil, io.ErrUnexpectedEOF
		}
		text := strings.TrimSpace(p.in.Text())
		if text == "" {
			continue
		}
		move, err := r.parse(text)
		if err != nil {
			p.printf("%v\n", err)
			continue
		}
		return move, nil
	}
}

func (p *Player) show(r rules, view communication.View) error {
	board, err := r.render(p.out, view.State)
	if err != nil {
		return err
	}
	p.printf("\n%s", board)
	return nil
}

func (p *Player) outcome(view communication.View) string {
	winner, ok := view.Result.Winner()
	switch {
	case !ok:
		return "draw"
	case winner == view.Human:
		return p.out.String("you win").Bold().String()
	}
	return p.out.String("bot wins").Bold().String()
}

func (p *Player) styled(player game.Player, text string) string {
	return mark(p.out, player, text)
}

func (p *Player) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}
