package executor

import "time"

// EventType represents different lifecycle phases in query execution
type EventType string

const (
	EventExecStart  EventType = "exec_start"
	EventStageStart EventType = "stage_start"
	EventStageEnd   EventType = "stage_end"
	EventExecEnd    EventType = "exec_end"
)

// Stage names one step of the SELECT pipeline
type Stage string

const (
	StageResolve   Stage = "resolve"
	StageDecode    Stage = "decode"
	StageFilter    Stage = "filter"
	StageProject   Stage = "project"
	StageReorder   Stage = "reorder"
	StageFunctions Stage = "functions"
	StageLimit     Stage = "limit"
	StageEmit      Stage = "emit"
)

// Stages lists the pipeline in execution order
var Stages = []Stage{
	StageResolve, StageDecode, StageFilter, StageProject,
	StageReorder, StageFunctions, StageLimit, StageEmit,
}

// Event represents a lifecycle event in query execution
type Event struct {
	Type      EventType   // Type of event
	ExecID    string      // Execution ID for tracing
	Stage     Stage       // Set for stage events
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (table name, StageStats, error)
}

// StageStats is the shape of the working table after a stage
type StageStats struct {
	Rows    int
	Columns int
	Err     error
}

// Observer interface for event subscribers
// Observers receive events at every pipeline stage
type Observer interface {
	OnEvent(event Event)
}
