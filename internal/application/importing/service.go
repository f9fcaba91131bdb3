package importing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RowReader decodes an uploaded file into raw rows. Unreadable input is
// reported as *ParseError.
type RowReader interface {
	ReadRows(ctx context.Context, fileName string, r io.Reader) ([]RawRow, error)
}

type TemplateWriter interface {
	WriteTemplate(w io.Writer, sheet string, columns []Column) error
}

// Store keeps sessions between the preview and the confirmation.
type Store[T any] interface {
	Save(ctx context.Context, sess *Session[T]) error
	Load(ctx context.Context, id string) (*Session[T], error)
	Delete(ctx context.Context, id string) error
}

type RunInput struct {
	Report     ImportReport
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunRecorder persists the outcome of a finished import.
type RunRecorder interface {
	RecordRun(ctx context.Context, in RunInput) (string, error)
}

// Importer is the entity-agnostic surface of a Service.
type Importer interface {
	Entity() string
	Start(ctx context.Context, fileName string, r io.Reader) (PreviewReport, error)
	Session(ctx context.Context, id string) (PreviewReport, error)
	Confirm(ctx context.Context, id string) (ImportReport, error)
	Cancel(ctx context.Context, id string) error
	Discard(ctx context.Context, id string) error
	Template(ctx context.Context, w io.Writer) error
}

type ServiceDeps[T any] struct {
	Listers  map[Source]Lister
	Matcher  Matcher
	Reader   RowReader
	Template TemplateWriter
	Store    Store[T]
	Creator  Creator[T]
	Recorder RunRecorder
	Logger   logrus.FieldLogger
	Metrics  Metrics
}

// Service runs the import session lifecycle for one schema.
type Service[T any] struct {
	schema   Schema[T]
	deps     ServiceDeps[T]
	importer *BatchImporter[T]
	logger   logrus.FieldLogger

	mu       sync.Mutex
	inflight map[string]context.CancelFunc
}

func NewService[T any](schema Schema[T], deps ServiceDeps[T]) *Service[T] {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	if deps.Metrics == nil {
		deps.Metrics = nopMetrics{}
	}
	if deps.Matcher == nil {
		deps.Matcher = ContainsMatcher{}
	}
	logger := deps.Logger.WithField("entity", schema.Entity)
	return &Service[T]{
		schema:   schema,
		deps:     deps,
		importer: NewBatchImporter(schema.Entity, deps.Creator, deps.Logger, deps.Metrics),
		logger:   logger,
		inflight: make(map[string]context.CancelFunc),
	}
}

func (s *Service[T]) Entity() string {
	return s.schema.Entity
}

func (s *Service[T]) Schema() Schema[T] {
	return s.schema
}

// Start reads the file, loads the reference snapshot and parses the rows into
// a stored preview session.
func (s *Service[T]) Start(ctx context.Context, fileName string, r io.Reader) (PreviewReport, error) {
	sess := NewSession[T](s.schema.Entity)
	if err := sess.LoadFile(fileName); err != nil {
		return PreviewReport{}, err
	}
	log := s.logger.WithFields(logrus.Fields{"session_id": sess.ID, "file": fileName})

	rows, err := s.deps.Reader.ReadRows(ctx, fileName, r)
	if err != nil {
		_ = sess.ParseFailed()
		var perr *ParseError
		if !errors.As(err, &perr) {
			err = &ParseError{File: fileName, Err: err}
		}
		log.WithError(err).Warn("import file rejected")
		return PreviewReport{}, err
	}

	refs, err := LoadReferences(ctx, s.deps.Listers, s.schema.Sources())
	if err != nil {
		return PreviewReport{}, err
	}

	preview := NewParser(s.schema, NewLookup(refs, s.deps.Matcher)).Parse(rows)
	if err := sess.ShowPreview(preview); err != nil {
		return PreviewReport{}, err
	}

	valid, invalid := preview.Counts()
	s.deps.Metrics.ObserveParse(s.schema.Entity, valid, invalid)
	log.WithFields(logrus.Fields{"valid": valid, "invalid": invalid}).Info("import preview ready")

	if err := s.deps.Store.Save(ctx, sess); err != nil {
		return PreviewReport{}, fmt.Errorf("save import session: %w", err)
	}
	return BuildPreviewReport(sess), nil
}

func (s *Service[T]) Session(ctx context.Context, id string) (PreviewReport, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return PreviewReport{}, err
	}
	return BuildPreviewReport(sess), nil
}

// Confirm imports the valid rows of a previewing session. The session is
// dropped once the run has been recorded.
func (s *Service[T]) Confirm(ctx context.Context, id string) (ImportReport, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if !s.claim(id, cancel) {
		return ImportReport{}, ErrSessionBusy
	}
	defer s.release(id)

	sess, err := s.load(ctx, id)
	if err != nil {
		return ImportReport{}, err
	}
	if err := sess.BeginImport(); err != nil {
		return ImportReport{}, err
	}
	if err := s.deps.Store.Save(ctx, sess); err != nil {
		return ImportReport{}, fmt.Errorf("save import session: %w", err)
	}

	startedAt := time.Now().UTC()
	log := s.logger.WithField("session_id", id)
	result, runErr := s.importer.Run(runCtx, sess.Preview.Rows, nil)
	if runErr != nil {
		log.WithError(runErr).Warn("import stopped before all rows were attempted")
	}
	if err := sess.Complete(result); err != nil {
		return ImportReport{}, err
	}

	report := BuildImportReport(sess)
	persistCtx := context.WithoutCancel(ctx)
	if s.deps.Recorder != nil {
		runID, err := s.deps.Recorder.RecordRun(persistCtx, RunInput{
			Report:     report,
			StartedAt:  startedAt,
			FinishedAt: time.Now().UTC(),
		})
		if err != nil {
			log.WithError(err).Error("record import run failed")
		}
		report.RunID = runID
	}

	if err := s.deps.Store.Delete(persistCtx, id); err != nil {
		log.WithError(err).Warn("drop completed import session failed")
	}
	return report, nil
}

// Cancel stops a running import after the row in progress.
func (s *Service[T]) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	cancel, ok := s.inflight[id]
	s.mu.Unlock()
	if ok {
		cancel()
		return nil
	}
	sess, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: session is %s", ErrInvalidTransition, sess.State)
}

func (s *Service[T]) Discard(ctx context.Context, id string) error {
	sess, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := sess.Discard(); err != nil {
		return err
	}
	return s.deps.Store.Delete(ctx, id)
}

func (s *Service[T]) Template(ctx context.Context, w io.Writer) error {
	return s.deps.Template.WriteTemplate(w, s.schema.Sheet, s.schema.Columns)
}

func (s *Service[T]) load(ctx context.Context, id string) (*Session[T], error) {
	sess, err := s.deps.Store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Entity != s.schema.Entity {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service[T]) claim(id string, cancel context.CancelFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[id]; busy {
		return false
	}
	s.inflight[id] = cancel
	return true
}

func (s *Service[T]) release(id string) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}
