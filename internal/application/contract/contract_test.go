package contract_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	app "github.com/bizdash/import-service/internal/application/contract"
	"github.com/bizdash/import-service/internal/application/importing"
	domain "github.com/bizdash/import-service/internal/domain/contract"
)

func newLookup() *importing.Lookup {
	refs := importing.NewReferences(map[importing.Source]importing.Collection{
		importing.SourceUnits: {
			{ID: "u-1", Code: "HN01", Name: "Hà Nội 1"},
		},
		importing.SourcePartners: {
			{ID: "p-1", Code: "ABC", Name: "Công ty ABC"},
		},
		importing.SourceEmployees: {
			{ID: "e-1", Code: "NV01", Name: "Nguyễn Văn A"},
		},
	})
	return importing.NewLookup(refs, importing.ContainsMatcher{})
}

func validRaw(title string) importing.RawRow {
	return importing.RawRow{title, "Output", "ABC", "HN01", "Nguyễn Văn A", 1000.0, 600.0, 45306.0, "01/02/2024", "31/12/2024", "Đang thực hiện", "Main"}
}

func TestDecodeNormalizesCells(t *testing.T) {
	t.Parallel()

	row := app.Decode(importing.RawRow{" Hợp đồng A ", "Mua vào", "ABC", "HN01", nil, "1500.5", 200.0, 45306.0, "1-2-24", "", "Hết hiệu lực", "Thầu phụ"})

	if row.Title != "Hợp đồng A" {
		t.Fatalf("unexpected title: %q", row.Title)
	}
	if row.Type != string(domain.TypeInput) {
		t.Fatalf("unexpected type: %s", row.Type)
	}
	if row.Value != 1500.5 || row.EstimatedCost != 200 {
		t.Fatalf("unexpected amounts: %v %v", row.Value, row.EstimatedCost)
	}
	if row.SignedDate != "2024-01-15" || row.StartDate != "2024-02-01" || row.EndDate != "" {
		t.Fatalf("unexpected dates: %s %s %s", row.SignedDate, row.StartDate, row.EndDate)
	}
	if row.Status != string(domain.StatusExpired) {
		t.Fatalf("expected negated label to read as Expired, got %s", row.Status)
	}
	if row.Category != string(domain.CategorySubcontract) {
		t.Fatalf("unexpected category: %s", row.Category)
	}
}

func TestDecodeShortRow(t *testing.T) {
	t.Parallel()

	row := app.Decode(importing.RawRow{"Only title"})
	if row.Title != "Only title" || row.Status != string(domain.StatusPending) || row.Type != string(domain.TypeOutput) {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestSchemaHasTwelveColumns(t *testing.T) {
	t.Parallel()

	headers := app.NewSchema().Headers()
	if len(headers) != 12 {
		t.Fatalf("expected 12 columns, got %d", len(headers))
	}
	if headers[0] != "Title" || headers[11] != "Category" {
		t.Fatalf("unexpected headers: %v", headers)
	}
}

func TestParseResolvesReferences(t *testing.T) {
	t.Parallel()

	preview := importing.NewParser(app.NewSchema(), newLookup()).Parse([]importing.RawRow{validRaw("Hợp đồng A")})

	row := preview.Rows[0]
	if !row.IsValid() {
		t.Fatalf("expected valid row, got %v", row.Errors)
	}
	if row.RefID(app.RefUnit) != "u-1" || row.RefID(app.RefCustomer) != "p-1" || row.RefID(app.RefSalesperson) != "e-1" {
		t.Fatalf("unexpected refs: %+v", row.Refs)
	}
}

func TestParseRejectsUnknownUnitAndBadDates(t *testing.T) {
	t.Parallel()

	raw := validRaw("Hợp đồng B")
	raw[3] = "XX99"
	raw[8] = "2024-12-31"
	raw[9] = "01/01/2024"

	row := importing.NewParser(app.NewSchema(), newLookup()).Parse([]importing.RawRow{raw}).Rows[0]

	if row.IsValid() {
		t.Fatal("expected invalid row")
	}
	joined := strings.Join(row.Errors, "|")
	if !strings.Contains(joined, "Unit 'XX99' not found") {
		t.Fatalf("expected unit reference error, got %v", row.Errors)
	}
	if !strings.Contains(joined, "End date must not be before start date") {
		t.Fatalf("expected date order error, got %v", row.Errors)
	}
}

func TestParseOptionalSalespersonOnlyErrorsWhenUnresolved(t *testing.T) {
	t.Parallel()

	blank := validRaw("Hợp đồng C")
	blank[4] = ""
	unknown := validRaw("Hợp đồng D")
	unknown[4] = "Lê Văn Z"

	preview := importing.NewParser(app.NewSchema(), newLookup()).Parse([]importing.RawRow{blank, unknown})

	if !preview.Rows[0].IsValid() {
		t.Fatalf("blank salesperson should be accepted, got %v", preview.Rows[0].Errors)
	}
	if preview.Rows[1].FirstError() != "Salesperson 'Lê Văn Z' not found" {
		t.Fatalf("unexpected error: %v", preview.Rows[1].Errors)
	}
}

type fakeContractRepo struct {
	created   []domain.Contract
	returnErr error
}

func (f *fakeContractRepo) Create(ctx context.Context, c domain.Contract) (domain.Contract, error) {
	if f.returnErr != nil {
		return domain.Contract{}, f.returnErr
	}
	f.created = append(f.created, c)
	return c, nil
}

type fakeSequences struct {
	next  map[string]int
	years []int
}

func (f *fakeSequences) NextSequence(ctx context.Context, unitID string, year int) (int, error) {
	if f.next == nil {
		f.next = map[string]int{}
	}
	f.next[unitID]++
	f.years = append(f.years, year)
	return f.next[unitID], nil
}

func TestCreatorAllocatesCodesInOrder(t *testing.T) {
	t.Parallel()

	repo := &fakeContractRepo{}
	seq := &fakeSequences{}
	creator := app.NewCreator(repo, seq)

	preview := importing.NewParser(app.NewSchema(), newLookup()).Parse([]importing.RawRow{
		validRaw("Hợp đồng A"),
		validRaw("Hợp đồng B"),
	})
	for _, row := range preview.Rows {
		if err := creator.Create(context.Background(), row); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if len(repo.created) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(repo.created))
	}
	if repo.created[0].Code != "HN01-2024-001" || repo.created[1].Code != "HN01-2024-002" {
		t.Fatalf("unexpected codes: %s %s", repo.created[0].Code, repo.created[1].Code)
	}
	first := repo.created[0]
	if first.SignedDate == nil || first.SignedDate.Format("2006-01-02") != "2024-01-15" {
		t.Fatalf("unexpected signed date: %v", first.SignedDate)
	}
	if first.Value.String() != "1000" || first.SalespersonID != "e-1" {
		t.Fatalf("unexpected contract: %+v", first)
	}
}

func TestCreatorWrapsRepositoryError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("db down")
	creator := app.NewCreator(&fakeContractRepo{returnErr: repoErr}, &fakeSequences{})
	row := importing.NewParser(app.NewSchema(), newLookup()).Parse([]importing.RawRow{validRaw("Hợp đồng A")}).Rows[0]

	if err := creator.Create(context.Background(), row); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestCodeYear(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		row  app.Row
		want int
	}{
		{name: "signed date wins", row: app.Row{SignedDate: "2023-05-01", StartDate: "2024-01-01"}, want: 2023},
		{name: "start date fallback", row: app.Row{SignedDate: "garbage", StartDate: "2024-01-01"}, want: 2024},
		{name: "current year", row: app.Row{}, want: 2026},
	}
	for _, tc := range cases {
		if got := app.CodeYear(tc.row, now); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}
