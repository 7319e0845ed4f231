package reporter

import (
	"fmt"

	"github.com/aleister1102/companywatch/internal/models"
)

// missingValue stands in for absent or null record values in rendered lines.
const missingValue = "unknown"

// Formatter renders one record as a single display line
type Formatter func(models.Record) string

// OfficerFormatter renders "name (appointed on date)"
func OfficerFormatter(r models.Record) string {
	return fmt.Sprintf("%s (appointed on %s)", valueOr(r, "name"), valueOr(r, "appointed_on"))
}

// FilingFormatter renders "type on date"
func FilingFormatter(r models.Record) string {
	return fmt.Sprintf("%s on %s", valueOr(r, "type"), valueOr(r, "date"))
}

// OfficerTitle is the block heading for officer changes of a company
func OfficerTitle(companyNumber string) string {
	return fmt.Sprintf("Company %s: Officer Changes", companyNumber)
}

// FilingHistoryTitle is the block heading for filing history changes of a company
func FilingHistoryTitle(companyNumber string) string {
	return fmt.Sprintf("Company %s: Filing History Changes", companyNumber)
}

func valueOr(r models.Record, path string) string {
	if v := r.String(path); v != "" {
		return v
	}
	return missingValue
}
