package notion

import (
	"sort"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
)

// pagesToRecords converts a page of query results.
func pagesToRecords(pages []notionapi.Page) []domain.RawRecord {
	records := make([]domain.RawRecord, 0, len(pages))
	for _, p := range pages {
		records = append(records, pageToRecord(p))
	}
	return records
}

// pageToRecord flattens a Notion page into a raw record. Properties arrive as
// an unordered map, so fields are ordered deterministically: the title
// property first, then the rest sorted by property name. Property types the
// normaliser does not consume are skipped.
func pageToRecord(page notionapi.Page) domain.RawRecord {
	names := make([]string, 0, len(page.Properties))
	for name := range page.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]domain.Field, 0, len(names))
	for _, name := range names {
		field, ok := propertyToField(name, page.Properties[name])
		if !ok {
			continue
		}
		if field.Type == domain.FieldTitle {
			fields = append([]domain.Field{field}, fields...)
			continue
		}
		fields = append(fields, field)
	}

	return domain.RawRecord{
		ID:     page.ID.String(),
		URL:    page.URL,
		Fields: fields,
	}
}

// propertyToField converts one Notion property. The second return value is
// false for property types with no field mapping.
func propertyToField(name string, prop notionapi.Property) (domain.Field, bool) {
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		return domain.Field{Name: name, Type: domain.FieldTitle, Text: plainText(p.Title)}, true
	case *notionapi.RichTextProperty:
		return domain.Field{Name: name, Type: domain.FieldText, Text: plainText(p.RichText)}, true
	case *notionapi.URLProperty:
		return domain.Field{Name: name, Type: domain.FieldURL, URL: p.URL}, true
	case *notionapi.SelectProperty:
		return domain.Field{Name: name, Type: domain.FieldSelect, Text: p.Select.Name}, true
	case *notionapi.MultiSelectProperty:
		return domain.Field{Name: name, Type: domain.FieldMultiSelect, Labels: optionNames(p.MultiSelect)}, true
	case *notionapi.CheckboxProperty:
		return domain.Field{Name: name, Type: domain.FieldCheckbox, Checked: p.Checkbox}, true
	default:
		return domain.Field{}, false
	}
}

// plainText concatenates the plain-text runs of a rich-text value.
func plainText(runs []notionapi.RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}
	return b.String()
}

// optionNames extracts the non-empty names of select options.
func optionNames(options []notionapi.Option) []string {
	names := make([]string, 0, len(options))
	for _, o := range options {
		if o.Name != "" {
			names = append(names, o.Name)
		}
	}
	return names
}
