package models

// DiffResult holds the records that appeared in or disappeared from one field.
// A key never appears in both lists. Records present on both sides are omitted
// even if their other values changed.
type DiffResult struct {
	Added   []Record `json:"added"`
	Removed []Record `json:"removed"`

	// KeyCollisions counts records dropped because an earlier record in the
	// same list had the same key. Last write wins.
	KeyCollisions int `json:"-"`
}

// IsEmpty reports whether nothing was added or removed.
func (d DiffResult) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// FieldDiff pairs a field name with its diff.
type FieldDiff struct {
	Field string
	Diff  DiffResult
}

// ChangeReport collects the per-field diffs of one cycle, in field order.
type ChangeReport struct {
	EntityID string
	CycleID  string
	Fields   []FieldDiff
}

// Add appends the diff for field.
func (r *ChangeReport) Add(field string, diff DiffResult) {
	r.Fields = append(r.Fields, FieldDiff{Field: field, Diff: diff})
}

// Get returns the diff recorded for field.
func (r *ChangeReport) Get(field string) (DiffResult, bool) {
	for _, fd := range r.Fields {
		if fd.Field == field {
			return fd.Diff, true
		}
	}
	return DiffResult{}, false
}

// AnyChanges reports whether at least one field has additions or removals.
func (r *ChangeReport) AnyChanges() bool {
	for _, fd := range r.Fields {
		if !fd.Diff.IsEmpty() {
			return true
		}
	}
	return false
}
