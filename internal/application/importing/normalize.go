package importing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// DateLayout is the canonical output of NormalizeDate.
const DateLayout = "2006-01-02"

// maxSerial is 9999-12-31, the last date a spreadsheet can hold.
const maxSerial = 2958465

var (
	dayMonthYear  = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// Text trims a cell into a string. Empty means absent.
func Text(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	default:
		s, err := cast.ToStringE(value)
		if err != nil {
			return strings.TrimSpace(fmt.Sprint(value))
		}
		return strings.TrimSpace(s)
	}
}

// Fold is the comparison form of free text: NFC composed, trimmed and
// lower-cased, so precomposed and combining Vietnamese marks compare equal.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// NormalizeDate converts a spreadsheet serial (numeric cell or numeric text)
// or a day-month-year string into
// YYYY-MM-DD. Anything else is returned trimmed and unchanged.
func NormalizeDate(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return normalizeDateText(strings.TrimSpace(value))
	case bool:
		return Text(value)
	default:
		serial, err := cast.ToFloat64E(value)
		if err != nil {
			return Text(value)
		}
		if date, ok := SerialToDate(serial); ok {
			return date
		}
		return Text(value)
	}
}

// SerialToDate converts a 1900-system spreadsheet serial to YYYY-MM-DD.
func SerialToDate(serial float64) (string, bool) {
	if serial <= 0 || serial >= maxSerial+1 || math.IsNaN(serial) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(math.Floor(serial), false)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

func normalizeDateText(s string) string {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if date, ok := SerialToDate(serial); ok {
			return date
		}
		return s
	}
	m := dayMonthYear.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := m[3]
	if len(year) == 2 {
		year = "20" + year
	}
	y, _ := strconv.Atoi(year)
	return fmt.Sprintf("%04d-%02d-%02d", y, month, day)
}

// Number coerces a cell the way parseFloat does: the leading numeric prefix
// of a string, the value of a numeric cell, otherwise 0.
func Number(v any) float64 {
	var f float64
	switch value := v.(type) {
	case nil:
		return 0
	case bool:
		return 0
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(value))
		if m == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		parsed, err := cast.ToFloat64E(value)
		if err != nil {
			return 0
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Keyword maps a canonical value to the lower-case tokens that select it.
type Keyword struct {
	Value  string
	Tokens []string
}

// KeywordTable resolves free-text labels by substring match. Entries are
// tried in order; the first entry with a contained token wins.
type KeywordTable struct {
	Entries  []Keyword
	Fallback string
}

func (t KeywordTable) Normalize(v any) string {
	label := Fold(Text(v))
	if label == "" {
		return t.Fallback
	}
	for _, entry := range t.Entries {
		for _, token := range entry.Tokens {
			if strings.Contains(label, Fold(token)) {
				return entry.Value
			}
		}
	}
	return t.Fallback
}

// Values lists every canonical value the table can produce.
func (t KeywordTable) Values() []string {
	out := make([]string, 0, len(t.Entries)+1)
	seen := map[string]bool{}
	for _, entry := range t.Entries {
		if !seen[entry.Value] {
			seen[entry.Value] = true
			out = append(out, entry.Value)
		}
	}
	if t.Fallback != "" && !seen[t.Fallback] {
		out = append(out, t.Fallback)
	}
	return out
}

// IsDate reports whether s is a real calendar date in DateLayout.
func IsDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := ParseDate(s)
	return err == nil
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
