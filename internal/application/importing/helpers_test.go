package importing_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/bizdash/import-service/internal/application/importing"
)

// item is a small entity used to drive the engine in tests.
type item struct {
	Name   string  `json:"name"`
	Unit   string  `json:"unit"`
	Owner  string  `json:"owner"`
	Amount float64 `json:"amount"`
}

func itemSchema() importing.Schema[item] {
	return importing.Schema[item]{
		Entity: "items",
		Sheet:  "Items",
		Columns: []importing.Column{
			{Header: "Name"}, {Header: "Unit"}, {Header: "Owner"}, {Header: "Amount"},
		},
		Decode: func(raw importing.RawRow) item {
			return item{
				Name:   importing.Text(raw.Cell(0)),
				Unit:   importing.Text(raw.Cell(1)),
				Owner:  importing.Text(raw.Cell(2)),
				Amount: importing.Number(raw.Cell(3)),
			}
		},
		Required: []importing.Field[item]{{Label: "Name", Value: func(i item) string { return i.Name }}},
		Key:      importing.Field[item]{Label: "Name", Value: func(i item) string { return i.Name }},
		References: []importing.RefSpec[item]{
			{Key: "unitId", Label: "Unit", Source: importing.SourceUnits, Required: true, Value: func(i item) string { return i.Unit }},
			{Key: "ownerId", Label: "Owner", Source: importing.SourceEmployees, Value: func(i item) string { return i.Owner }},
		},
		Rules: []importing.Rule[item]{
			importing.NonNegative("Amount", func(i item) float64 { return i.Amount }),
		},
	}
}

func itemListers() map[importing.Source]importing.Lister {
	return map[importing.Source]importing.Lister{
		importing.SourceUnits: importing.ListerFunc(func(ctx context.Context) ([]importing.Entry, error) {
			return units, nil
		}),
		importing.SourceEmployees: importing.ListerFunc(func(ctx context.Context) ([]importing.Entry, error) {
			return []importing.Entry{{ID: "e-1", Code: "NV01", Name: "Nguyễn Văn A"}}, nil
		}),
	}
}

func itemLookup() *importing.Lookup {
	return importing.NewLookup(importing.NewReferences(map[importing.Source]importing.Collection{
		importing.SourceUnits:     units,
		importing.SourceEmployees: {{ID: "e-1", Code: "NV01", Name: "Nguyễn Văn A"}},
	}), importing.ContainsMatcher{})
}

// fakeReader returns fixed rows, or err when set.
type fakeReader struct {
	rows []importing.RawRow
	err  error
}

func (f fakeReader) ReadRows(ctx context.Context, fileName string, r io.Reader) ([]importing.RawRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeTemplate struct{}

func (fakeTemplate) WriteTemplate(w io.Writer, sheet string, columns []importing.Column) error {
	_, err := io.WriteString(w, sheet)
	return err
}

type memStore[T any] struct {
	mu       sync.Mutex
	sessions map[string]*importing.Session[T]
}

func newMemStore[T any]() *memStore[T] {
	return &memStore[T]{sessions: map[string]*importing.Session[T]{}}
}

func (s *memStore[T]) Save(ctx context.Context, sess *importing.Session[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.sessions[sess.ID] = &copied
	return nil
}

func (s *memStore[T]) Load(ctx context.Context, id string) (*importing.Session[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, importing.ErrSessionNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *memStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// recordingCreator records created rows and fails names listed in failOn.
type recordingCreator struct {
	mu      sync.Mutex
	created []string
	failOn  map[string]bool
	onCall  func(n int)
}

func (c *recordingCreator) Create(ctx context.Context, row importing.ParsedRow[item]) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.onCall != nil {
		c.onCall(len(c.created) + 1)
	}
	if c.failOn[row.Data.Name] {
		c.created = append(c.created, "")
		return errors.New("insert failed: " + row.Data.Name)
	}
	c.created = append(c.created, row.Data.Name)
	return nil
}

type fakeRecorder struct {
	inputs []importing.RunInput
	err    error
}

func (r *fakeRecorder) RecordRun(ctx context.Context, in importing.RunInput) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.inputs = append(r.inputs, in)
	return "run-1", nil
}

func emptyFile() io.Reader {
	return bytes.NewReader(nil)
}
