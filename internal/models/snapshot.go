package models

// Tracked field names. They double as the keys of the persisted snapshot document.
const (
	FieldOfficers      = "officers"
	FieldFilingHistory = "filing_history"
)

// FieldSnapshot is the ordered list of records observed for one field.
type FieldSnapshot []Record

// Snapshot maps field name to the records seen in the last successful cycle.
// It is replaced wholesale on every successful cycle and never partially updated.
type Snapshot map[string]FieldSnapshot

// NewSnapshot returns an empty snapshot, the state assumed on first run.
func NewSnapshot() Snapshot {
	return make(Snapshot)
}

// Field returns the records stored for name; an absent field yields nil.
func (s Snapshot) Field(name string) FieldSnapshot {
	if s == nil {
		return nil
	}
	return s[name]
}

// IsEmpty reports whether no field has been recorded yet.
func (s Snapshot) IsEmpty() bool {
	return len(s) == 0
}
