package workflow

import (
	"strconv"
	"strings"
)

// Department is the routing label attached to a classified document.
type Department string

const (
	DeptFinance         Department = "Finance"
	DeptHR              Department = "HR"
	DeptLegal           Department = "Legal"
	DeptCustomerSupport Department = "CustomerSupport"
	DeptUnknown         Department = "Unknown"
)

// ParseDepartment maps free-form labels onto the enum, falling back to
// Unknown rather than failing.
func ParseDepartment(raw string) Department {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", "")) {
	case "finance":
		return DeptFinance
	case "hr", "humanresources":
		return DeptHR
	case "legal":
		return DeptLegal
	case "customersupport", "support":
		return DeptCustomerSupport
	default:
		return DeptUnknown
	}
}

// Result is the automated decision for a classified document.
type Result struct {
	Outcome   string
	Checklist []string
}

// Entity kinds the engine inspects. The entities map is open-ended; kinds it
// does not know about are carried through untouched.
const (
	EntityAmounts        = "amounts"
	EntityDates          = "dates"
	EntityInvoiceNumbers = "invoice_numbers"
)

const DefaultApprovalThreshold = 50000

// Engine maps a classified document to a workflow outcome and checklist.
// Evaluate is a pure function of its inputs.
type Engine struct {
	// ApprovalThreshold is the amount above which finance documents need
	// explicit approval. Zero means DefaultApprovalThreshold.
	ApprovalThreshold int64
}

// Evaluate applies the department policy. Unrecognized departments take the
// Unknown branch; the engine never errors.
func (e Engine) Evaluate(dept Department, entities map[string][]string, summary string) Result {
	switch dept {
	case DeptFinance:
		return e.evalFinance(entities)
	case DeptHR:
		return evalHR(summary)
	case DeptCustomerSupport:
		return evalSupport(summary)
	default:
		return manualReview()
	}
}

func (e Engine) threshold() int64 {
	if e.ApprovalThreshold > 0 {
		return e.ApprovalThreshold
	}
	return DefaultApprovalThreshold
}

func (e Engine) evalFinance(entities map[string][]string) Result {
	hasInvoice := len(entities[EntityInvoiceNumbers]) > 0
	amount := maxAmount(entities[EntityAmounts])
	if hasInvoice && amount > e.threshold() {
		return Result{
			Outcome:   "Needs approval",
			Checklist: []string{"Route to approver", "Verify invoice against PO"},
		}
	}
	return Result{
		Outcome:   "Auto-approved",
		Checklist: []string{"Archive"},
	}
}

type hrIntent struct {
	keywords  []string
	outcome   string
	checklist []string
}

// Ordered; first match wins.
var hrIntents = []hrIntent{
	{
		keywords:  []string{"onboarding", "joining", "new hire", "orientation"},
		outcome:   "Onboarding",
		checklist: []string{"Notify payroll", "Schedule orientation"},
	},
	{
		keywords:  []string{"resign", "exit", "termination", "separation", "last working day"},
		outcome:   "Employee exit",
		checklist: []string{"Schedule exit interview", "Revoke system access", "Process final settlement"},
	},
	{
		keywords:  []string{"policy", "acknowledg", "compliance", "code of conduct"},
		outcome:   "Policy acknowledgment needed",
		checklist: []string{"Circulate policy", "Collect acknowledgments"},
	},
}

func evalHR(summary string) Result {
	text := strings.ToLower(summary)
	for _, intent := range hrIntents {
		for _, kw := range intent.keywords {
			if strings.Contains(text, kw) {
				return Result{Outcome: intent.outcome, Checklist: append([]string(nil), intent.checklist...)}
			}
		}
	}
	return manualReview()
}

func evalSupport(summary string) Result {
	text := strings.ToLower(summary)
	urgent := false
	for _, kw := range []string{"high", "urgent", "critical", "severe"} {
		if strings.Contains(text, kw) {
			urgent = true
			break
		}
	}
	if urgent {
		return Result{
			Outcome:   "Escalation needed",
			Checklist: []string{"Create support ticket", "Notify account manager", "Draft apology email"},
		}
	}
	return Result{
		Outcome:   "Normal ticket",
		Checklist: []string{"Create support ticket"},
	}
}

func manualReview() Result {
	return Result{
		Outcome:   "Needs manual review",
		Checklist: []string{"Assign reviewer"},
	}
}

// maxAmount parses the amount candidates and returns the largest value.
// Candidates that carry a currency mark or thousand separators are taken as
// stronger evidence, so a bare year like "2024" never outranks "$62,000".
func maxAmount(candidates []string) int64 {
	var best int64
	bestCurrency := false
	for _, raw := range candidates {
		currency := strings.ContainsAny(raw, "₹$") || strings.Contains(raw, ",")
		value := parseAmount(raw)
		if value == 0 {
			continue
		}
		switch {
		case currency && !bestCurrency:
			best, bestCurrency = value, true
		case currency == bestCurrency && value > best:
			best = value
		}
	}
	return best
}

func parseAmount(raw string) int64 {
	cleaned := strings.NewReplacer("₹", "", "$", "", ",", "", " ", "").Replace(raw)
	// Integer part only; thresholds do not care about paise/cents.
	cleaned, _, _ = strings.Cut(cleaned, ".")
	value, err := strconv.ParseInt(strings.TrimSpace(cleaned), 10, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
