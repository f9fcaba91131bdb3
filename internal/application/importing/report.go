package importing

import "fmt"

type RowMessage struct {
	RowIndex int    `json:"row_index"`
	Message  string `json:"message"`
}

func (m RowMessage) String() string {
	return fmt.Sprintf("Row %d: %s", m.RowIndex, m.Message)
}

type RowPreview struct {
	RowIndex   int                    `json:"row_index"`
	Valid      bool                   `json:"valid"`
	FirstError string                 `json:"first_error,omitempty"`
	Errors     []string               `json:"errors"`
	Refs       map[string]ResolvedRef `json:"refs,omitempty"`
	Data       any                    `json:"data"`
}

// PreviewReport is what the user sees before confirming.
type PreviewReport struct {
	SessionID string       `json:"session_id"`
	Entity    string       `json:"entity"`
	State     State        `json:"state"`
	FileName  string       `json:"file_name"`
	Total     int          `json:"total"`
	Valid     int          `json:"valid"`
	Invalid   int          `json:"invalid"`
	Rows      []RowPreview `json:"rows"`
	Errors    []RowMessage `json:"errors"`
}

// ImportReport is the post-import summary.
type ImportReport struct {
	SessionID string       `json:"session_id"`
	RunID     string       `json:"run_id,omitempty"`
	Entity    string       `json:"entity"`
	FileName  string       `json:"file_name"`
	Total     int          `json:"total"`
	Valid     int          `json:"valid"`
	Invalid   int          `json:"invalid"`
	Attempts  int          `json:"attempts"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Cancelled bool         `json:"cancelled"`
	Failures  []RowMessage `json:"failures"`
	Summary   string       `json:"summary"`
}

func BuildPreviewReport[T any](sess *Session[T]) PreviewReport {
	valid, invalid := sess.Preview.Counts()
	report := PreviewReport{
		SessionID: sess.ID,
		Entity:    sess.Entity,
		State:     sess.State,
		FileName:  sess.FileName,
		Total:     len(sess.Preview.Rows),
		Valid:     valid,
		Invalid:   invalid,
		Rows:      make([]RowPreview, 0, len(sess.Preview.Rows)),
		Errors:    make([]RowMessage, 0),
	}
	for _, row := range sess.Preview.Rows {
		report.Rows = append(report.Rows, RowPreview{
			RowIndex:   row.RowIndex,
			Valid:      row.IsValid(),
			FirstError: row.FirstError(),
			Errors:     row.Errors,
			Refs:       row.Refs,
			Data:       row.Data,
		})
		for _, msg := range row.Errors {
			report.Errors = append(report.Errors, RowMessage{RowIndex: row.RowIndex, Message: msg})
		}
	}
	return report
}

func BuildImportReport[T any](sess *Session[T]) ImportReport {
	valid, invalid := sess.Preview.Counts()
	report := ImportReport{
		SessionID: sess.ID,
		Entity:    sess.Entity,
		FileName:  sess.FileName,
		Total:     len(sess.Preview.Rows),
		Valid:     valid,
		Invalid:   invalid,
		Failures:  make([]RowMessage, 0),
	}
	if sess.Result != nil {
		report.Attempts = sess.Result.Attempts
		report.Succeeded = sess.Result.SuccessCount
		report.Failed = len(sess.Result.Failures)
		report.Cancelled = sess.Result.Cancelled
		for _, failure := range sess.Result.Failures {
			report.Failures = append(report.Failures, RowMessage(failure))
		}
	}
	report.Summary = Summarize(report)
	return report
}

// Summarize renders the one-line toast text for a finished import.
func Summarize(r ImportReport) string {
	line := fmt.Sprintf("Imported %d of %d %s, %d failed", r.Succeeded, r.Valid, r.Entity, r.Failed)
	if r.Cancelled {
		line += fmt.Sprintf(" (cancelled, %d not attempted)", r.Valid-r.Attempts)
	}
	if r.Invalid > 0 {
		line += fmt.Sprintf("; %d invalid rows skipped", r.Invalid)
	}
	return line
}
