package classify

import (
	"regexp"

	"portal-backend/internal/workflow"
)

var (
	amountRe  = regexp.MustCompile(`(?:₹|\$)\s?\d{1,3}(?:,\d{2,3})*(?:\.\d{2})?|\b\d{1,3}(?:,\d{2,3})+(?:\.\d{2})?\b|\b\d{4,}(?:\.\d{2})?\b`)
	dateRe    = regexp.MustCompile(`(?i)\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{1,2}\s(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s\d{2,4}\b`)
	invoiceRe = regexp.MustCompile(`(?i)\bINV[-/]\d{4}[-/]\d{3}\b`)
)

// ExtractEntities pulls structured entities out of document text. The result
// is an open-ended kind -> ordered values map; downstream code must tolerate
// kinds it does not know about.
func ExtractEntities(text string) map[string][]string {
	entities := map[string][]string{}
	if amounts := amountRe.FindAllString(text, -1); len(amounts) > 0 {
		entities[workflow.EntityAmounts] = amounts
	}
	if dates := dateRe.FindAllString(text, -1); len(dates) > 0 {
		entities[workflow.EntityDates] = dates
	}
	if invoices := invoiceRe.FindAllString(text, -1); len(invoices) > 0 {
		entities[workflow.EntityInvoiceNumbers] = invoices
	}
	return entities
}
