package differ

import "github.com/aleister1102/companywatch/internal/models"

// OfficerKey identifies an officer appointment by its self link, which is
// unique per appointment even when the same person is appointed twice.
func OfficerKey(r models.Record) string {
	return r.String("links.self")
}

// FilingKey identifies a filing history entry by its transaction id.
func FilingKey(r models.Record) string {
	return r.String("transaction_id")
}
