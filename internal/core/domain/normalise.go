package domain

import "strings"

// Normalise maps a raw source record and its owning source descriptor into
// the canonical SearchResult shape.
//
// Title: the record's title field, or NoTitle when absent or empty.
// Content: every text-bearing field in record order (title first), trimmed,
// empty fields skipped, joined by newline. Link: the record's canonical
// external link when present. The function is total for well-formed records;
// malformed records must be filtered out by the caller before normalisation.
func Normalise(record RawRecord, source SourceDescriptor) SearchResult {
	title := NoTitle
	if f, ok := record.TitleField(); ok {
		if t := strings.TrimSpace(f.Text); t != "" {
			title = t
		}
	}

	var parts []string
	for _, f := range record.Fields {
		if t := f.text(); t != "" {
			parts = append(parts, t)
		}
	}

	return SearchResult{
		Origin:     OriginKnowledge,
		SourceID:   source.ID,
		RecordID:   record.ID,
		Title:      title,
		Content:    strings.Join(parts, "\n"),
		Link:       record.URL,
		SourceName: source.Name,
		UsageHint:  source.UsageHint,
	}
}

// CompositeText builds the lower-cased searchable string used only during
// fallback matching: the non-empty members of [source name, usage hint,
// title, content] joined by newline.
func CompositeText(result SearchResult) string {
	var parts []string
	for _, s := range []string{result.SourceName, result.UsageHint, result.Title, result.Content} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, "\n"))
}

// CountHits returns how many of the extracted keywords occur in the
// composite text. Keywords are matched as lower-cased substrings and
// repeated keywords count independently.
func CountHits(composite string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(composite, strings.ToLower(kw)) {
			hits++
		}
	}
	return hits
}
