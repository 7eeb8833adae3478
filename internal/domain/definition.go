package domain

// Record is a single row/document keyed by field name. Whether the keys are
// display names or storage names depends on which side of the translation
// boundary the record sits on.
type Record = map[string]any

// IDField is the identifier key, identity-mapped on both sides of the
// boundary. It is present on every record returned from the store and must
// be absent on records submitted for creation.
const IDField = "id"

// Field maps one display/API field name to its storage name. Most fields are
// identity-mapped; the snake-styled storage names are the exceptions.
type Field struct {
	Display string
	Storage string
}

// SortSpec describes the display ordering of a resource: always descending,
// by one field, either string compare or numeric compare.
type SortSpec struct {
	Field   string // display field name
	Numeric bool
}

// Definition describes one resource: its storage collection, the recognized
// fields and their storage names, which fields are required on create, the
// defaults applied before submission, and the display sort order.
type Definition struct {
	Name       string // resource name, ex: "timeline"
	Collection string // storage collection name
	Fields     []Field
	Required   []string // display field names that must be non-empty on create
	Defaults   Record   // display field name -> default value
	Sort       SortSpec
}

// StorageField returns the storage name for a display field, and whether the
// field is recognized at all.
func (d *Definition) StorageField(display string) (string, bool) {
	if display == IDField {
		return IDField, true
	}
	for _, f := range d.Fields {
		if f.Display == display {
			return f.Storage, true
		}
	}
	return "", false
}

// DisplayField is the inverse of StorageField.
func (d *Definition) DisplayField(storage string) (string, bool) {
	if storage == IDField {
		return IDField, true
	}
	for _, f := range d.Fields {
		if f.Storage == storage {
			return f.Display, true
		}
	}
	return "", false
}

// ToStorage translates a display-keyed record into a storage-keyed one.
// Only recognized fields cross the boundary; the translation is lossless and
// symmetric for every recognized field. Unrecognized keys are dropped.
func (d *Definition) ToStorage(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		if storage, ok := d.StorageField(k); ok {
			out[storage] = v
		}
	}
	return out
}

// FromStorage translates a storage-keyed record into a display-keyed one.
func (d *Definition) FromStorage(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		if display, ok := d.DisplayField(k); ok {
			out[display] = v
		}
	}
	return out
}

// Validate checks the create-time invariants: every required field present
// and non-empty. The record is display-keyed. Returns a *ValidationError on
// the first violation.
func (d *Definition) Validate(rec Record) error {
	for _, field := range d.Required {
		v, ok := rec[field]
		if !ok || v == nil {
			return requiredField(field)
		}
		if s, isStr := v.(string); isStr && s == "" {
			return requiredField(field)
		}
	}
	return nil
}

// ApplyDefaults returns a copy of rec with the definition's defaults filled
// in for absent fields. Fields already present are left as given.
func (d *Definition) ApplyDefaults(rec Record) Record {
	out := make(Record, len(rec)+len(d.Defaults))
	for k, v := range rec {
		out[k] = v
	}
	for k, v := range d.Defaults {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}
