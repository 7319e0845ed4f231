package datastore

import (
	"encoding/json"

	"github.com/aleister1102/companywatch/internal/common/errorwrapper"
	"github.com/aleister1102/companywatch/internal/models"
)

// encodeSnapshot renders the snapshot document with 2-space indentation.
// Nil field lists are written as [] so a reload sees the same shape.
func encodeSnapshot(snapshot models.Snapshot) ([]byte, error) {
	doc := make(models.Snapshot, len(snapshot))
	for field, records := range snapshot {
		if records == nil {
			records = models.FieldSnapshot{}
		}
		doc[field] = records
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to encode snapshot")
	}
	return append(data, '\n'), nil
}

// decodeSnapshot parses a stored document. Anything but a JSON object of
// record lists is rejected.
func decodeSnapshot(data []byte) (models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, errorwrapper.NewError("snapshot document is not a JSON object")
	}
	return snapshot, nil
}
