package domain

import "strings"

// FieldType identifies the kind of value a record field carries.
type FieldType string

// Field types mirroring the knowledge source's property types.
const (
	// FieldTitle is the record's title field. At most one per record.
	FieldTitle FieldType = "title"

	// FieldText is a free-text field.
	FieldText FieldType = "rich_text"

	// FieldURL is a link field.
	FieldURL FieldType = "url"

	// FieldSelect is a single-choice field; Text holds the chosen label.
	FieldSelect FieldType = "select"

	// FieldMultiSelect is a multi-choice field; Labels holds the chosen labels.
	FieldMultiSelect FieldType = "multi_select"

	// FieldCheckbox is a boolean field; Checked holds the value.
	FieldCheckbox FieldType = "checkbox"
)

// Field is one typed property of a RawRecord.
type Field struct {
	// Name is the property name as declared by the source.
	Name string

	// Type is the property type.
	Type FieldType

	// Text holds the plain text for title, rich_text, and select fields.
	Text string

	// Labels holds the chosen labels for multi_select fields.
	Labels []string

	// URL holds the value of url fields.
	URL string

	// Checked holds the value of checkbox fields.
	Checked bool
}

// Text-bearing extraction for content assembly. Returns the trimmed text
// contribution of the field, or "" when the field contributes nothing.
func (f Field) text() string {
	switch f.Type {
	case FieldTitle, FieldText, FieldSelect:
		return strings.TrimSpace(f.Text)
	case FieldMultiSelect:
		return strings.TrimSpace(strings.Join(f.Labels, " "))
	case FieldURL:
		return strings.TrimSpace(f.URL)
	default:
		return ""
	}
}

// RawRecord is an opaque per-source item (a "page") as fetched from a
// knowledge source. It is owned by the source and read-only to this system.
// The owning adapter fixes the field order: title field first, remaining
// fields in lexicographic name order.
type RawRecord struct {
	// ID is the source-internal identifier of the record.
	ID string

	// URL is the record's canonical external link, if any.
	URL string

	// Fields are the record's typed properties.
	Fields []Field
}

// TitleField returns the record's title field, if present.
func (r RawRecord) TitleField() (Field, bool) {
	for _, f := range r.Fields {
		if f.Type == FieldTitle {
			return f, true
		}
	}
	return Field{}, false
}

// BoolField returns the value of the named checkbox field.
// Missing fields read as false.
func (r RawRecord) BoolField(name string) bool {
	for _, f := range r.Fields {
		if f.Type == FieldCheckbox && f.Name == name {
			return f.Checked
		}
	}
	return false
}

// TextField returns the trimmed text of the first text-bearing field with
// the given name, or "" if absent.
func (r RawRecord) TextField(name string) string {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.text()
		}
	}
	return ""
}
