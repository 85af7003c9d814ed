package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() SourceDescriptor {
	return SourceDescriptor{
		ID:        "4f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c",
		Name:      "漫画",
		UsageHint: "おすすめ漫画のリスト",
		Enabled:   true,
	}
}

func TestNormalise_AllFieldTypes(t *testing.T) {
	record := RawRecord{
		ID:  "rec-1",
		URL: "https://www.notion.so/rec-1",
		Fields: []Field{
			{Name: "Name", Type: FieldTitle, Text: "ワンピース"},
			{Name: "Author", Type: FieldText, Text: "  尾田栄一郎  "},
			{Name: "Genres", Type: FieldMultiSelect, Labels: []string{"冒険", "少年"}},
			{Name: "Official", Type: FieldURL, URL: "https://one-piece.com"},
			{Name: "Status", Type: FieldSelect, Text: "連載中"},
			{Name: "Read", Type: FieldCheckbox, Checked: true},
		},
	}

	got := Normalise(record, testSource())

	assert.Equal(t, OriginKnowledge, got.Origin)
	assert.Equal(t, "4f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c", got.SourceID)
	assert.Equal(t, "rec-1", got.RecordID)
	assert.Equal(t, "ワンピース", got.Title)
	assert.Equal(t, "ワンピース\n尾田栄一郎\n冒険 少年\nhttps://one-piece.com\n連載中", got.Content)
	assert.Equal(t, "https://www.notion.so/rec-1", got.Link)
	assert.Equal(t, "漫画", got.SourceName)
	assert.Equal(t, "おすすめ漫画のリスト", got.UsageHint)
}

func TestNormalise_MissingTitleGetsPlaceholder(t *testing.T) {
	record := RawRecord{
		ID: "rec-2",
		Fields: []Field{
			{Name: "Memo", Type: FieldText, Text: "本文のみ"},
		},
	}

	got := Normalise(record, testSource())

	assert.Equal(t, NoTitle, got.Title)
	assert.Equal(t, "本文のみ", got.Content)
}

func TestNormalise_EmptyTitleGetsPlaceholder(t *testing.T) {
	record := RawRecord{
		ID: "rec-3",
		Fields: []Field{
			{Name: "Name", Type: FieldTitle, Text: "   "},
		},
	}

	got := Normalise(record, testSource())

	assert.Equal(t, NoTitle, got.Title)
	assert.Empty(t, got.Content)
}

func TestNormalise_EmptyFieldsSkipped(t *testing.T) {
	record := RawRecord{
		ID: "rec-4",
		Fields: []Field{
			{Name: "Name", Type: FieldTitle, Text: "タイトル"},
			{Name: "Empty", Type: FieldText, Text: ""},
			{Name: "Blank", Type: FieldMultiSelect, Labels: nil},
			{Name: "NoLink", Type: FieldURL, URL: ""},
			{Name: "Memo", Type: FieldText, Text: "メモ"},
		},
	}

	got := Normalise(record, testSource())

	assert.Equal(t, "タイトル\nメモ", got.Content)
}

func TestNormalise_NoCanonicalLink(t *testing.T) {
	record := RawRecord{
		ID:     "rec-5",
		Fields: []Field{{Name: "Name", Type: FieldTitle, Text: "x y"}},
	}

	got := Normalise(record, testSource())

	assert.Empty(t, got.Link)
}

func TestCompositeText_IncludesSourceMetadata(t *testing.T) {
	// A record whose title and body alone match nothing can still be
	// accepted because the source name participates in the composite.
	record := RawRecord{
		ID:     "rec-6",
		Fields: []Field{{Name: "Name", Type: FieldTitle, Text: "ワンピース"}},
	}
	result := Normalise(record, testSource())

	composite := CompositeText(result)

	assert.Contains(t, composite, "漫画")
	assert.Contains(t, composite, "ワンピース")
	assert.Equal(t, 2, CountHits(composite, []string{"漫画", "おすすめ"}))
}

func TestCompositeText_SkipsEmptyMembers(t *testing.T) {
	result := SearchResult{Title: "Only Title"}

	assert.Equal(t, "only title", CompositeText(result))
}

func TestCountHits_RepeatsCountIndependently(t *testing.T) {
	composite := "漫画のリスト"

	assert.Equal(t, 2, CountHits(composite, []string{"漫画", "漫画"}))
	assert.Equal(t, 0, CountHits(composite, []string{"小説"}))
}

func TestCountHits_MonotonicInKeywords(t *testing.T) {
	accepted := CompositeText(SearchResult{SourceName: "漫画", Title: "ワンピース"})
	rejected := CompositeText(SearchResult{SourceName: "料理", Title: "カレー"})

	keywords := []string{"漫画"}
	require.GreaterOrEqual(t, CountHits(accepted, keywords), 1)
	assert.Zero(t, CountHits(rejected, keywords))

	// Growing the keyword list with non-matching terms never drops an
	// accepted record and never rejects it.
	for _, extra := range []string{"小説", "映画", "音楽"} {
		keywords = append(keywords, extra)
		assert.GreaterOrEqual(t, CountHits(accepted, keywords), 1,
			"adding non-matching keyword %q must not remove acceptance", extra)
		assert.Zero(t, CountHits(rejected, keywords))
	}

	// A keyword matching the previously rejected record adds it without
	// affecting the already-accepted one.
	keywords = append(keywords, "カレー")
	assert.GreaterOrEqual(t, CountHits(rejected, keywords), 1)
	assert.GreaterOrEqual(t, CountHits(accepted, keywords), 1)
}

func TestCountHits_CaseInsensitive(t *testing.T) {
	composite := CompositeText(SearchResult{Title: "One Piece"})

	assert.Equal(t, 1, CountHits(composite, []string{"PIECE"}))
}

func TestRawRecord_FieldAccessors(t *testing.T) {
	record := RawRecord{
		Fields: []Field{
			{Name: "Name", Type: FieldTitle, Text: "タイトル"},
			{Name: "Enabled", Type: FieldCheckbox, Checked: true},
			{Name: "URL", Type: FieldURL, URL: "https://example.com/db"},
		},
	}

	title, ok := record.TitleField()
	assert.True(t, ok)
	assert.Equal(t, "タイトル", title.Text)
	assert.True(t, record.BoolField("Enabled"))
	assert.False(t, record.BoolField("Missing"))
	assert.Equal(t, "https://example.com/db", record.TextField("URL"))
	assert.Empty(t, record.TextField("Missing"))
}
