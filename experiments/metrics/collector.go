package metrics

import (
	"reversi/game"
	"sync/atomic"
	"time"
)

type StopReason int

const (
	StopNone      StopReason = iota // search ran to its depth
	StopInterrupt                   // the stop flag was raised
)

func (r StopReason) String() string {
	if r == StopInterrupt {
		return "interrupt"
	}
	return "none"
}

type SearchMetric struct {
	Depth    int
	Duration time.Duration
	Nodes    int // recursive calls, root included
	Leaves   int // static evaluations
	Cutoffs  int // sibling loops ended by alpha >= beta
	Stopped  StopReason
}

// AgentConfig describes one computer player in an experiment.
type AgentConfig struct {
	ID       int
	Depth    int
	Evaluate string // name of the evaluation function, see EvaluateFn
}

// EvaluateFn resolves an AgentConfig's evaluation name, defaulting to material.
func (c AgentConfig) EvaluateFn() game.Evaluate {
	if c.Evaluate == "mobility" {
		return game.EvaluateMobility
	}
	return game.EvaluateMaterial
}

type MoveMetric struct {
	Step   int
	Player game.Stone
	Passed bool
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Stone
	Winner         game.Stone
	BlackCount     int
	WhiteCount     int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Finished       bool // false if a player quit before the game was over
}

type Collector interface {
	Start(depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	Interrupted()
	Complete() SearchMetric
}

type collector struct {
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
	stopped   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters so one collector can be reused across searches.
func (m *collector) Start(depth int) {
	m.depth = depth
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
	m.stopped.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Interrupted() {
	m.stopped.Store(true)
}

func (m *collector) Complete() SearchMetric {
	reason := StopNone
	if m.stopped.Load() {
		reason = StopInterrupt
	}
	return SearchMetric{
		Depth:    m.depth,
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		Leaves:   int(m.leaves.Load()),
		Cutoffs:  int(m.cutoffs.Load()),
		Stopped:  reason,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)        {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddLeaf()               {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) Interrupted()           {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
