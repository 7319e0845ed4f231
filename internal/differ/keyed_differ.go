package differ

import (
	"github.com/aleister1102/companywatch/internal/models"
)

// recordIndex maps each key to the position of the record that wins it.
// Later duplicates overwrite earlier ones.
type recordIndex struct {
	winners    map[string]int
	collisions int
}

func indexRecords(records []models.Record, keyFn models.KeyFunc) recordIndex {
	idx := recordIndex{winners: make(map[string]int, len(records))}
	for i, r := range records {
		key := keyFn(r)
		if _, dup := idx.winners[key]; dup {
			idx.collisions++
		}
		idx.winners[key] = i
	}
	return idx
}

// Diff compares two record lists by identity key.
//
// Added holds records of newRecords whose key is absent from oldRecords, in
// newRecords order; Removed holds records of oldRecords whose key is absent from
// newRecords, in oldRecords order. When a key repeats within one list only the
// last occurrence is kept. Empty keys are valid keys.
func Diff(oldRecords, newRecords []models.Record, keyFn models.KeyFunc) models.DiffResult {
	oldIdx := indexRecords(oldRecords, keyFn)
	newIdx := indexRecords(newRecords, keyFn)

	result := models.DiffResult{
		Added:         []models.Record{},
		Removed:       []models.Record{},
		KeyCollisions: oldIdx.collisions + newIdx.collisions,
	}

	for i, r := range newRecords {
		key := keyFn(r)
		if newIdx.winners[key] != i {
			continue
		}
		if _, seen := oldIdx.winners[key]; !seen {
			result.Added = append(result.Added, r)
		}
	}

	for i, r := range oldRecords {
		key := keyFn(r)
		if oldIdx.winners[key] != i {
			continue
		}
		if _, kept := newIdx.winners[key]; !kept {
			result.Removed = append(result.Removed, r)
		}
	}

	return result
}
