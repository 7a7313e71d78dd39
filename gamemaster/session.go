package gamemaster

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"mctsgames/communication"
	"mctsgames/game"
	"mctsgames/searcher/agent"

	"github.com/rs/zerolog"
)

// Handle is a running session with its move type hidden behind JSON.
type Handle interface {
	ID() string
	View() communication.View
	Play(ctx context.Context, move json.RawMessage) (communication.View, error)
	Wait(ctx context.Context, after int) (communication.View, error)
	Close()
}

type request[M comparable] struct {
	move  M
	reply chan error
}

// session owns one game against the bot. Only the owner goroutine (run)
// touches the state and the bot's tree. Everyone else reads published views.
type session[M comparable, S game.State[M, S]] struct {
	id     string
	kind   string
	human  game.Player
	bot    agent.Agent[M, S]
	logger zerolog.Logger

	requests chan request[M]
	quit     chan struct{}
	done     chan struct{}
	once     sync.Once

	view    atomic.Pointer[communication.View]
	mu      sync.Mutex
	changed chan struct{} // closed on publish
}

func newSession[M comparable, S game.State[M, S]](id, kind string, start S, human game.Player, bot agent.Agent[M, S], logger zerolog.Logger) *session[M, S] {
	s := &session[M, S]{
		id:       id,
		kind:     kind,
		human:    human,
		bot:      bot,
		logger:   logger.With().Str("session", id).Str("game", kind).Logger(),
		requests: make(chan request[M]),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		changed:  make(chan struct{}),
	}
	s.bot.Reset(start)
	s.publish(start, nil)
	go s.run(start)
	return s
}

func (s *session[M, S]) ID() string {
	return s.id
}

func (s *session[M, S]) View() communication.View {
	return *s.view.Load()
}

// Play decodes a human move and hands it to the owner goroutine.
func (s *session[M, S]) Play(ctx context.Context, raw json.RawMessage) (communication.View, error) {
	var move M
	if err := json.Unmarshal(raw, &move); err != nil {
		return s.View(), fmt.Errorf("decoding move: %w", game.ErrIllegalMove)
	}
	if !s.View().HumanToMove() {
		return s.View(), s.turnError()
	}

	req := request[M]{move: move, reply: make(chan error, 1)}
	select {
	case s.requests <- req:
	case <-s.done:
		return s.View(), ErrSessionClosed
	case <-ctx.Done():
		return s.View(), ctx.Err()
	}
	err := <-req.reply
	return s.View(), err
}

// Wait blocks until the view's version is greater than after.
func (s *session[M, S]) Wait(ctx context.Context, after int) (communication.View, error) {
	for {
		s.mu.Lock()
		view, changed := s.view.Load(), s.changed
		s.mu.Unlock()
		if view.Version > after {
			return *view, nil
		}

		select {
		case <-changed:
		case <-s.done:
			return *s.view.Load(), ErrSessionClosed
		case <-ctx.Done():
			return *view, ctx.Err()
		}
	}
}

// Close stops the owner goroutine, waiting for a running search to finish.
func (s *session[M, S]) Close() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}

func (s *session[M, S]) run(state S) {
	defer close(s.done)
	for {
		if state.Result() == game.InProgress && state.Player() != s.human {
			next, err := s.think(state)
			if err != nil {
				s.logger.Error().Err(err).Msg("bot failed to move")
				return
			}
			state = next
			continue
		}

		select {
		case req := <-s.requests:
			next, err := s.apply(state, req.move)
			if err == nil {
				state = next
			}
			req.reply <- err
		case <-s.quit:
			return
		}
	}
}

func (s *session[M, S]) think(state S) (S, error) {
	move, metric, err := s.bot.FindMove()
	if err != nil {
		return state, err
	}
	next, err := state.Play(move)
	if err != nil {
		return state, fmt.Errorf("bot played %v: %w", move, err)
	}
	if err := s.bot.Observe(move); err != nil {
		return state, err
	}

	s.logger.Info().
		Str("move", fmt.Sprint(move)).
		Int("episodes", metric.Episodes).
		Bool("tree_reused", metric.IsTreeReused).
		Msg("bot moved")
	s.publish(next, move)
	return next, nil
}

func (s *session[M, S]) apply(state S, move M) (S, error) {
	if state.Result() != game.InProgress {
		return state, game.ErrGameOver
	}
	if state.Player() != s.human {
		return state, s.turnError()
	}
	next, err := state.Play(move)
	if err != nil {
		return state, err
	}
	if err := s.bot.Observe(move); err != nil {
		return state, err
	}

	s.logger.Info().Str("move", fmt.Sprint(move)).Msg("human moved")
	s.publish(next, move)
	return next, nil
}

func (s *session[M, S]) turnError() error {
	if s.View().Result != game.InProgress {
		return game.ErrGameOver
	}
	return ErrNotYourTurn
}

// publish stores a new view and wakes up every waiter. A nil move marks the
// starting position.
func (s *session[M, S]) publish(state S, move any) {
	view := communication.View{
		ID:     s.id,
		Game:   s.kind,
		Human:  s.human,
		Player: state.Player(),
		Result: state.Result(),
	}
	view.Thinking = view.Result == game.InProgress && view.Player != s.human
	view.State = mustMarshal(state)
	if move != nil {
		view.LastMove = mustMarshal(move)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev := s.view.Load(); prev != nil {
		view.Version = prev.Version + 1
	}
	s.view.Store(&view)
	close(s.changed)
	s.changed = make(chan struct{})
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("encoding %T: %v", v, err))
	}
	return data
}
