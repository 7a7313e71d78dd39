package gamemaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"mctsgames/communication"
	"mctsgames/game"
	"mctsgames/game/connect4"
	"mctsgames/game/tictactoe"
	"mctsgames/meta"
	"mctsgames/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrUnknownGame     = errors.New("unknown game")
	ErrSessionClosed   = errors.New("session closed")
)

// factory starts a session of one game kind.
type factory func(id string, human game.Player, options []agent.Option, logger zerolog.Logger) Handle

var kinds = map[string]factory{
	"tictactoe": func(id string, human game.Player, options []agent.Option, logger zerolog.Logger) Handle {
		bot := agent.NewEvaluationAgent[tictactoe.Move, tictactoe.State](options...)
		return newSession[tictactoe.Move](id, "tictactoe", tictactoe.New(), human, bot, logger)
	},
	"connect4": func(id string, human game.Player, options []agent.Option, logger zerolog.Logger) Handle {
		bot := agent.NewEvaluationAgent[connect4.Move, connect4.State](options...)
		return newSession[connect4.Move](id, "connect4", connect4.New(), human, bot, logger)
	},
}

// Kinds lists the games a Manager can host.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Manager hosts human versus bot sessions keyed by UUID. It implements
// communication.Communicator for in-process clients.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]Handle
	order    []string

	thinkTime time.Duration
	episodes  int
	seed      *uint64
	logger    zerolog.Logger
}

type Option func(m *Manager)

// WithThinkTime sets how long the bot searches per move.
func WithThinkTime(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.thinkTime = d
		}
	}
}

// WithEpisodes caps the bot's iterations per move on top of the think time.
func WithEpisodes(episodes int) Option {
	return func(m *Manager) {
		m.episodes = episodes
	}
}

// WithSeed seeds every bot, making sessions reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Manager) {
		m.seed = &seed
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func NewManager(options ...Option) *Manager {
	m := &Manager{
		sessions:  make(map[string]Handle),
		thinkTime: meta.ThinkTime,
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Manager) NewGame(_ context.Context, kind string, humanFirst bool) (communication.View, error) {
	start, ok := kinds[kind]
	if !ok {
		return communication.View{}, fmt.Errorf("%w: %q", ErrUnknownGame, kind)
	}

	human := game.PlayerOne
	if !humanFirst {
		human = game.PlayerTwo
	}
	options := []agent.Option{
		agent.WithDuration(m.thinkTime),
		agent.WithEpisodes(m.episodes),
		agent.WithLogger(m.logger),
	}
	if m.seed != nil {
		options = append(options, agent.WithSeed(*m.seed))
	}

	id := uuid.NewString()
	handle := start(id, human, options, m.logger)

	m.mu.Lock()
	m.sessions[id] = handle
	m.order = append(m.order, id)
	m.mu.Unlock()

	m.logger.Info().Str("session", id).Str("game", kind).Stringer("human", human).Msg("new game")
	return handle.View(), nil
}

// Games returns the views of all sessions in creation order.
func (m *Manager) Games(context.Context) ([]communication.View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	views := make([]communication.View, 0, len(m.order))
	for _, id := range m.order {
		views = append(views, m.sessions[id].View())
	}
	return views, nil
}

func (m *Manager) State(ctx context.Context, id string, after int) (communication.View, error) {
	handle, err := m.session(id)
	if err != nil {
		return communication.View{}, err
	}
	if after < 0 {
		return handle.View(), nil
	}
	return handle.Wait(ctx, after)
}

func (m *Manager) Play(ctx context.Context, id string, move json.RawMessage) (communication.View, error) {
	handle, err := m.session(id)
	if err != nil {
		return communication.View{}, err
	}
	return handle.Play(ctx, move)
}

// Close ends a session and forgets it.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	handle, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		m.order = slices.DeleteFunc(m.order, func(other string) bool { return other == id })
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	handle.Close()
	return nil
}

// Shutdown closes every session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	handles := make([]Handle, 0, len(m.sessions))
	for _, handle := range m.sessions {
		handles = append(handles, handle)
	}
	m.sessions = make(map[string]Handle)
	m.order = nil
	m.mu.Unlock()

	for _, handle := range handles {
		handle.Close()
	}
}

func (m *Manager) session(id string) (Handle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	handle, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return handle, nil
}

var _ communication.Communicator = (*Manager)(nil)
