package metrics

import (
	"sync/atomic"
	"time"

	"mctsgames/game"
)

type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	Expansions   int
	RootPlayouts int
	IsTreeReused bool
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingAgent int // AgentConfig.ID
	Winner        int // AgentConfig.ID, 0 on draw
	Result        game.Result
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
}

type Collector interface {
	Start()
	SetTreeReused(value bool)
	AddEpisode()
	AddExpansion()
	Complete(rootPlayouts int) SearchMetric
}

type collector struct {
	startTime    time.Time
	episodes     atomic.Int32
	expansions   atomic.Int32
	isTreeReused atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.expansions.Store(0)
	m.isTreeReused.Store(false)
}

func (m *collector) SetTreeReused(value bool) {
	m.isTreeReused.Store(value)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) Complete(rootPlayouts int) SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		Expansions:   int(m.expansions.Load()),
		RootPlayouts: rootPlayouts,
		IsTreeReused: m.isTreeReused.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                    {}
func (m *dummyCollector) SetTreeReused(value bool)  {}
func (m *dummyCollector) AddEpisode()               {}
func (m *dummyCollector) AddExpansion()             {}
func (m *dummyCollector) Complete(int) SearchMetric { return SearchMetric{} }
