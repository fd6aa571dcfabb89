package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portal-backend/internal/workflow"
)

type staticLLM struct {
	resp string
	err  error
}

func (s staticLLM) Complete(_ context.Context, _ string) (string, error) {
	return s.resp, s.err
}

func TestDepartmentFromText(t *testing.T) {
	cases := []struct {
		text string
		want workflow.Department
	}{
		{"Invoice INV-2024-001 payment due", workflow.DeptFinance},
		{"Resignation letter effective next month", workflow.DeptHR},
		{"Customer complaint about delivery delay", workflow.DeptCustomerSupport},
		{"Master services agreement, see clause 4", workflow.DeptLegal},
		{"Meeting notes from Tuesday", workflow.DeptUnknown},
	}
	for _, tc := range cases {
		if got := DepartmentFromText(tc.text); got != tc.want {
			t.Errorf("DepartmentFromText(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestExtractEntities(t *testing.T) {
	text := "Invoice INV-2024-001 dated 12/03/2024 for ₹75,000 plus $1,200.50 fees"
	entities := ExtractEntities(text)

	if got := entities[workflow.EntityInvoiceNumbers]; len(got) != 1 || got[0] != "INV-2024-001" {
		t.Fatalf("invoice_numbers = %v", got)
	}
	if got := entities[workflow.EntityDates]; len(got) != 1 {
		t.Fatalf("dates = %v", got)
	}
	amounts := entities[workflow.EntityAmounts]
	if len(amounts) < 2 {
		t.Fatalf("amounts = %v, want at least the two currency values", amounts)
	}
	joined := strings.Join(amounts, " ")
	if !strings.Contains(joined, "75,000") || !strings.Contains(joined, "1,200.50") {
		t.Fatalf("amounts = %v, missing currency values", amounts)
	}
}

func TestExtractEntitiesEmpty(t *testing.T) {
	if entities := ExtractEntities("nothing structured here"); len(entities) != 0 {
		t.Fatalf("entities = %v, want empty", entities)
	}
}

func TestKeywordClassifier(t *testing.T) {
	c := &KeywordClassifier{LLM: staticLLM{resp: "An invoice summary."}}

	result, err := c.Classify(context.Background(), "Invoice INV-2024-001 payment of ₹75,000")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Department != workflow.DeptFinance {
		t.Fatalf("department = %s, want Finance", result.Department)
	}
	if result.Summary != "An invoice summary." {
		t.Fatalf("summary = %q", result.Summary)
	}
	if len(result.Entities[workflow.EntityInvoiceNumbers]) != 1 {
		t.Fatalf("entities = %v", result.Entities)
	}
}

func TestKeywordClassifierSummarizerFailure(t *testing.T) {
	c := &KeywordClassifier{LLM: staticLLM{err: errors.New("model offline")}}

	_, err := c.Classify(context.Background(), "Invoice text")
	if !errors.Is(err, ErrClassification) {
		t.Fatalf("err = %v, want ErrClassification", err)
	}
}

func TestKeywordClassifierEmptyText(t *testing.T) {
	c := &KeywordClassifier{LLM: staticLLM{resp: "x"}}
	if _, err := c.Classify(context.Background(), "   "); !errors.Is(err, ErrClassification) {
		t.Fatalf("err = %v, want ErrClassification", err)
	}
}

func TestTicketCategory(t *testing.T) {
	cases := []struct {
		description string
		want        string
	}{
		{"VPN keeps dropping when on home wifi", "Network & Connectivity"},
		{"My password expired and I am locked out", "Password & Authentication"},
		{"Need a license for the design software", "Software & Applications"},
		{"The office printer is jammed again", "Hardware Issues"},
		{"Outlook calendar invites are not syncing", "Email & Communication"},
		{"Lost a folder on the shared drive", "Data & File Issues"},
		{"Antivirus flags a false positive", "Security & Permissions"},
		{"Grant my new account the reviewer role", "Account & Access Management"},
		{"Something is wrong but I cannot say what", "General IT Issue"},
	}
	for _, tc := range cases {
		if got := TicketCategory(tc.description); got != tc.want {
			t.Errorf("TicketCategory(%q) = %q, want %q", tc.description, got, tc.want)
		}
	}
}
