// Package form merges AI-extracted claim fields with user-submitted edits.
// The user always wins: an explicit edit, including an explicit clear,
// replaces the extracted value and is tagged user-provided.
package form

import (
	"appealgen/internal/model"
)

// Edits is the set of fields the user explicitly touched. Presence in the
// map is what matters; an empty string is an explicit clear, not an unset
// field.
type Edits struct {
	fields map[model.Field]string
}

// NewEdits creates an empty edit set
func NewEdits() *Edits {
	return &Edits{fields: make(map[model.Field]string)}
}

// Set records an explicit user value for a field. FieldDenialCodes takes a
// comma-separated list.
func (e *Edits) Set(field model.Field, value string) *Edits {
	e.fields[field] = value
	return e
}

// Has reports whether the user touched a field.
func (e *Edits) Has(field model.Field) bool {
	_, ok := e.fields[field]
	return ok
}

// Len reports how many fields were edited.
func (e *Edits) Len() int {
	return len(e.fields)
}

// Reconcile merges extraction output with user edits into a new record.
// For every field: an explicit user edit wins with provenance
// user-provided; otherwise the extracted value and provenance are kept
// unchanged. The input record is not mutated.
func Reconcile(extracted model.ClaimRecord, edits *Edits) model.ClaimRecord {
	record := extracted.Clone()
	if edits == nil {
		return record
	}

	for field, value := range edits.fields {
		record.Set(field, value, model.ProvenanceUser)
	}

	return record
}

// MissingFields lists the fields still unfilled after reconciliation, in
// document order, for required-field validation by the presentation layer.
func MissingFields(record model.ClaimRecord) []model.Field {
	var missing []model.Field
	for _, f := range model.Fields() {
		if record.IsMissing(f) {
			missing = append(missing, f)
		}
	}
	return missing
}
