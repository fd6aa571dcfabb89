package workflow

import "testing"

func TestEvaluateFinanceNeedsApproval(t *testing.T) {
	e := Engine{}
	entities := map[string][]string{
		"invoice_numbers": {"INV-2024-001"},
		"amounts":         {"₹75,000"},
	}

	res := e.Evaluate(DeptFinance, entities, "Invoice for services")
	if res.Outcome != "Needs approval" {
		t.Fatalf("outcome = %q, want Needs approval", res.Outcome)
	}
	want := []string{"Route to approver", "Verify invoice against PO"}
	if len(res.Checklist) != len(want) {
		t.Fatalf("checklist = %v, want %v", res.Checklist, want)
	}
	for i := range want {
		if res.Checklist[i] != want[i] {
			t.Fatalf("checklist[%d] = %q, want %q", i, res.Checklist[i], want[i])
		}
	}
}

func TestEvaluateFinanceAutoApproved(t *testing.T) {
	e := Engine{}
	cases := []struct {
		name     string
		entities map[string][]string
	}{
		{"below threshold", map[string][]string{
			"invoice_numbers": {"INV-2024-002"},
			"amounts":         {"$1,200"},
		}},
		{"at threshold", map[string][]string{
			"invoice_numbers": {"INV-2024-003"},
			"amounts":         {"50000"},
		}},
		{"no invoice number", map[string][]string{
			"amounts": {"₹90,000"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.Evaluate(DeptFinance, tc.entities, "")
			if res.Outcome != "Auto-approved" {
				t.Fatalf("outcome = %q, want Auto-approved", res.Outcome)
			}
			if len(res.Checklist) != 1 || res.Checklist[0] != "Archive" {
				t.Fatalf("checklist = %v, want [Archive]", res.Checklist)
			}
		})
	}
}

func TestEvaluateFinanceCustomThreshold(t *testing.T) {
	e := Engine{ApprovalThreshold: 1000}
	entities := map[string][]string{
		"invoice_numbers": {"INV-2024-004"},
		"amounts":         {"$1,500"},
	}
	res := e.Evaluate(DeptFinance, entities, "")
	if res.Outcome != "Needs approval" {
		t.Fatalf("outcome = %q, want Needs approval with threshold 1000", res.Outcome)
	}
}

func TestEvaluateHRIntents(t *testing.T) {
	e := Engine{}
	cases := []struct {
		summary string
		outcome string
	}{
		{"New employee joining next week, onboarding checklist attached", "Onboarding"},
		{"Resignation letter for employee exit processing", "Employee exit"},
		{"Updated leave policy requires acknowledgment from staff", "Policy acknowledgment needed"},
		{"General staffing question", "Needs manual review"},
	}
	for _, tc := range cases {
		res := e.Evaluate(DeptHR, nil, tc.summary)
		if res.Outcome != tc.outcome {
			t.Errorf("Evaluate(HR, %q) = %q, want %q", tc.summary, res.Outcome, tc.outcome)
		}
	}
}

func TestEvaluateSupportUrgency(t *testing.T) {
	e := Engine{}
	res := e.Evaluate(DeptCustomerSupport, nil, "Customer reports urgent outage affecting checkout")
	if res.Outcome == "Needs manual review" {
		t.Fatalf("urgent support summary should not fall through to manual review")
	}
	calm := e.Evaluate(DeptCustomerSupport, nil, "Question about billing cycle")
	if calm.Outcome == res.Outcome {
		t.Fatalf("urgent and routine support summaries should branch differently")
	}
}

func TestEvaluateManualReviewFallback(t *testing.T) {
	e := Engine{}
	for _, dept := range []Department{DeptLegal, DeptUnknown} {
		res := e.Evaluate(dept, nil, "anything")
		if res.Outcome != "Needs manual review" {
			t.Errorf("Evaluate(%s) = %q, want Needs manual review", dept, res.Outcome)
		}
		if len(res.Checklist) != 1 || res.Checklist[0] != "Assign reviewer" {
			t.Errorf("Evaluate(%s) checklist = %v, want [Assign reviewer]", dept, res.Checklist)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{"\u20b975,000", 75000},
		{"$1,200.50", 1200},
		{"50000", 50000},
		{"INV-2024", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := parseAmount(tc.raw); got != tc.want {
			t.Errorf("parseAmount(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestMaxAmountPrefersCurrencyMarked(t *testing.T) {
	got := maxAmount([]string{"2031", "$62,000", "45"})
	if got != 62000 {
		t.Fatalf("maxAmount = %d, want 62000", got)
	}
}

func TestParseDepartment(t *testing.T) {
	if d := ParseDepartment("finance"); d != DeptFinance {
		t.Fatalf("ParseDepartment(finance) = %s", d)
	}
	if d := ParseDepartment("nonsense"); d != DeptUnknown {
		t.Fatalf("ParseDepartment(nonsense) = %s", d)
	}
}
