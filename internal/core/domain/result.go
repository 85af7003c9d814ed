package domain

// OriginKnowledge tags results retrieved from the knowledge-source domain.
const OriginKnowledge = "knowledge"

// NoTitle is the placeholder title for records without an extractable title.
const NoTitle = "(no title)"

// SearchResult is the canonical shape of one retrieved record. It is created
// once per matching RawRecord during normalisation and never mutated; the
// caller that receives it owns it exclusively.
type SearchResult struct {
	// Origin is a fixed tag identifying the retrieval domain.
	Origin string `json:"origin"`

	// SourceID identifies the knowledge source the record came from.
	SourceID string `json:"source_id"`

	// RecordID is the source-internal identifier of the record.
	RecordID string `json:"record_id"`

	// Title is the record title. Never empty; see NoTitle.
	Title string `json:"title"`

	// Content is the newline-joined concatenation of all extractable text
	// fields, title first.
	Content string `json:"content"`

	// Link is the record's canonical external link, if any.
	Link string `json:"link,omitempty"`

	// SourceName is the display name of the owning source.
	SourceName string `json:"source_name,omitempty"`

	// UsageHint describes what the owning source contains.
	UsageHint string `json:"usage_hint,omitempty"`

	// HitCount is the number of query keywords that matched during the
	// fallback scan. Zero on the primary path. Acceptance stays boolean;
	// the count is emitted so a ranking layer can sort later without
	// changing acceptance semantics.
	HitCount int `json:"hit_count,omitempty"`
}

// SearchResponse is the outcome of one top-level retrieval call.
type SearchResponse struct {
	// Query is the raw query string as received.
	Query string `json:"query"`

	// Results are the retrieved records, source order preserved.
	Results []SearchResult `json:"results"`

	// FallbackUsed reports whether the keyword fallback scan produced the
	// result set instead of the primary title query.
	FallbackUsed bool `json:"fallback_used"`
}

// WebResult is one hit from the external web-search provider.
type WebResult struct {
	// Title is the page title.
	Title string `json:"title"`

	// Snippet is the provider's text excerpt.
	Snippet string `json:"snippet"`

	// Link is the page URL.
	Link string `json:"link"`
}

// Answer is the outcome of one grounded generation call.
type Answer struct {
	// Query is the user's question.
	Query string `json:"query"`

	// Text is the generated answer.
	Text string `json:"text"`

	// Knowledge are the knowledge-source results used for grounding.
	Knowledge []SearchResult `json:"knowledge"`

	// Web are the web-search results used for grounding.
	Web []WebResult `json:"web"`

	// FallbackUsed mirrors SearchResponse.FallbackUsed.
	FallbackUsed bool `json:"fallback_used"`
}
