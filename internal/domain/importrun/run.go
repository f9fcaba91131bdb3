package importrun

import "time"

type Status string

const (
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Failure struct {
	RowIndex int
	Message  string
}

// Run is the persisted outcome of one confirmed import session.
type Run struct {
	ID         string
	SessionID  string
	Entity     string
	FileName   string
	Status     Status
	TotalRows  int
	ValidRows  int
	Invalid    int
	Attempts   int
	Succeeded  int
	Failed     int
	Failures   []Failure
	StartedAt  time.Time
	FinishedAt time.Time
}
