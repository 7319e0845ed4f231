package differ

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/aleister1102/companywatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func officer(key, name, appointed string) models.Record {
	return models.Record{
		"name":         name,
		"appointed_on": appointed,
		"links":        map[string]any{"self": key},
	}
}

func filing(id, typ, date string) models.Record {
	return models.Record{"transaction_id": id, "type": typ, "date": date}
}

func keysOf(records []models.Record, keyFn models.KeyFunc) []string {
	keys := make([]string, 0, len(records))
	for _, r := range records {
		keys = append(keys, keyFn(r))
	}
	sort.Strings(keys)
	return keys
}

func TestDiff_OfficerAdded(t *testing.T) {
	alice := officer("A", "Alice", "2020-01-01")
	bob := officer("B", "Bob", "2023-05-01")

	result := Diff([]models.Record{alice}, []models.Record{alice, bob}, OfficerKey)

	require.Len(t, result.Added, 1)
	assert.Equal(t, "Bob", result.Added[0].String("name"))
	assert.Empty(t, result.Removed)
	assert.False(t, result.IsEmpty())
}

func TestDiff_AllFilingsRemoved(t *testing.T) {
	t1 := filing("T1", "AR01", "2021-01-01")

	result := Diff([]models.Record{t1}, []models.Record{}, FilingKey)

	assert.Empty(t, result.Added)
	require.Len(t, result.Removed, 1)
	assert.Equal(t, "T1", result.Removed[0].String("transaction_id"))
}

func TestDiff_IdenticalListsYieldNothing(t *testing.T) {
	records := []models.Record{
		filing("T1", "AR01", "2021-01-01"),
		filing("T2", "CS01", "2022-01-01"),
		filing("T3", "AA", "2022-06-30"),
	}

	result := Diff(records, records, FilingKey)

	assert.True(t, result.IsEmpty())
	assert.NotNil(t, result.Added)
	assert.NotNil(t, result.Removed)
}

func TestDiff_ValueChangesAreIgnored(t *testing.T) {
	before := officer("A", "Alice", "2020-01-01")
	after := officer("A", "Alice Smith", "2020-01-01")

	result := Diff([]models.Record{before}, []models.Record{after}, OfficerKey)

	assert.True(t, result.IsEmpty())
}

func TestDiff_PreservesInputOrder(t *testing.T) {
	old := []models.Record{filing("T1", "a", ""), filing("T2", "b", ""), filing("T3", "c", "")}
	current := []models.Record{filing("T9", "x", ""), filing("T2", "b", ""), filing("T7", "y", ""), filing("T8", "z", "")}

	result := Diff(old, current, FilingKey)

	assert.Equal(t, []string{"T9", "T7", "T8"}, []string{
		result.Added[0].String("transaction_id"),
		result.Added[1].String("transaction_id"),
		result.Added[2].String("transaction_id"),
	})
	assert.Equal(t, "T1", result.Removed[0].String("transaction_id"))
	assert.Equal(t, "T3", result.Removed[1].String("transaction_id"))
}

func TestDiff_DuplicateKeysLastWriteWins(t *testing.T) {
	first := filing("T1", "AR01", "2021-01-01")
	second := filing("T1", "AR01", "2021-02-02")

	result := Diff(nil, []models.Record{first, second}, FilingKey)

	require.Len(t, result.Added, 1)
	assert.Equal(t, "2021-02-02", result.Added[0].String("date"))
	assert.Equal(t, 1, result.KeyCollisions)
}

func TestDiff_EmptyKeysAreDegenerateButValid(t *testing.T) {
	noKeyA := models.Record{"name": "no link A"}
	noKeyB := models.Record{"name": "no link B"}

	result := Diff([]models.Record{noKeyA}, []models.Record{noKeyB}, OfficerKey)

	// Both map to "", so they collide across lists and nothing is reported.
	assert.True(t, result.IsEmpty())

	result = Diff(nil, []models.Record{noKeyA, noKeyB}, OfficerKey)
	require.Len(t, result.Added, 1)
	assert.Equal(t, 1, result.KeyCollisions)
}

func TestDiff_NilInputs(t *testing.T) {
	result := Diff(nil, nil, FilingKey)
	assert.True(t, result.IsEmpty())
}

func TestDiff_SymmetricDifferenceAndOrderIndependence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		universe := make([]string, 20)
		for i := range universe {
			universe[i] = string(rune('a' + i))
		}

		var old, current []models.Record
		inOld := map[string]bool{}
		inNew := map[string]bool{}
		for _, k := range universe {
			if rng.Intn(2) == 0 {
				old = append(old, filing(k, "t", ""))
				inOld[k] = true
			}
			if rng.Intn(2) == 0 {
				current = append(current, filing(k, "t", ""))
				inNew[k] = true
			}
		}

		var wantAdded, wantRemoved []string
		for _, k := range universe {
			if inNew[k] && !inOld[k] {
				wantAdded = append(wantAdded, k)
			}
			if inOld[k] && !inNew[k] {
				wantRemoved = append(wantRemoved, k)
			}
		}
		sort.Strings(wantAdded)
		sort.Strings(wantRemoved)

		result := Diff(old, current, FilingKey)
		assert.Equal(t, nonNil(wantAdded), keysOf(result.Added, FilingKey))
		assert.Equal(t, nonNil(wantRemoved), keysOf(result.Removed, FilingKey))

		rng.Shuffle(len(old), func(i, j int) { old[i], old[j] = old[j], old[i] })
		rng.Shuffle(len(current), func(i, j int) { current[i], current[j] = current[j], current[i] })

		shuffled := Diff(old, current, FilingKey)
		assert.Equal(t, keysOf(result.Added, FilingKey), keysOf(shuffled.Added, FilingKey))
		assert.Equal(t, keysOf(result.Removed, FilingKey), keysOf(shuffled.Removed, FilingKey))
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "/company/1/appointments/x", OfficerKey(officer("/company/1/appointments/x", "n", "")))
	assert.Equal(t, "", OfficerKey(models.Record{"links": "not an object"}))
	assert.Equal(t, "MzA0", FilingKey(filing("MzA0", "AR01", "")))
}
