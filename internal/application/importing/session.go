package importing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StateIdle       State = "idle"
	StateFileLoaded State = "file_loaded"
	StatePreviewing State = "previewing"
	StateImporting  State = "importing"
	StateCompleted  State = "completed"
)

var transitions = map[State][]State{
	StateIdle:       {StateFileLoaded},
	StateFileLoaded: {StatePreviewing, StateIdle},
	StatePreviewing: {StateImporting, StateIdle},
	StateImporting:  {StateCompleted},
}

// Session is one import attempt for one file. Completed is terminal; a new
// file starts a new session.
type Session[T any] struct {
	ID        string       `json:"id"`
	Entity    string       `json:"entity"`
	FileName  string       `json:"file_name"`
	State     State        `json:"state"`
	Preview   Preview[T]   `json:"preview"`
	Result    *BatchResult `json:"result,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func NewSession[T any](entity string) *Session[T] {
	now := time.Now().UTC()
	return &Session[T]{
		ID:        uuid.NewString(),
		Entity:    entity,
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session[T]) LoadFile(name string) error {
	if err := s.moveTo(StateFileLoaded); err != nil {
		return err
	}
	s.FileName = name
	return nil
}

// ParseFailed returns a session whose file could not be read to Idle.
func (s *Session[T]) ParseFailed() error {
	if s.State != StateFileLoaded {
		return s.invalid(StateIdle)
	}
	s.FileName = ""
	return s.moveTo(StateIdle)
}

func (s *Session[T]) ShowPreview(preview Preview[T]) error {
	if err := s.moveTo(StatePreviewing); err != nil {
		return err
	}
	s.Preview = preview
	return nil
}

// Discard drops the parsed rows so another file can be chosen.
func (s *Session[T]) Discard() error {
	if s.State != StatePreviewing {
		return s.invalid(StateIdle)
	}
	s.Preview = Preview[T]{}
	s.FileName = ""
	return s.moveTo(StateIdle)
}

func (s *Session[T]) BeginImport() error {
	return s.moveTo(StateImporting)
}

func (s *Session[T]) Complete(result BatchResult) error {
	if err := s.moveTo(StateCompleted); err != nil {
		return err
	}
	s.Result = &result
	return nil
}

func (s *Session[T]) moveTo(next State) error {
	for _, allowed := range transitions[s.State] {
		if allowed == next {
			s.State = next
			s.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return s.invalid(next)
}

func (s *Session[T]) invalid(next State) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, next)
}
