package serviceImp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrosim/database"
	advRepoImp "agrosim/pkg/advisory/repositoryImp"
)

func newSvc(t *testing.T) *Svc {
	t.Helper()
	db := database.OpenMemory()
	// nil embedder forces the keyword search path
	return New(advRepoImp.New(db), nil)
}

func TestChunkTextSplitsOnNewlineAfterLimit(t *testing.T) {
	line := strings.Repeat("a", 400) + "\n"
	text := strings.Repeat(line, 6)

	chs := chunkText(text, 1000)
	require.Len(t, chs, 2)
	for _, ch := range chs[:len(chs)-1] {
		assert.GreaterOrEqual(t, len(ch), 1000)
	}
	assert.Equal(t, text, strings.Join(chs, ""))
}

func TestChunkTextShortInput(t *testing.T) {
	chs := chunkText("short advisory", 1000)
	require.Len(t, chs, 1)
	assert.Equal(t, "short advisory", chs[0])

	assert.Empty(t, chunkText("", 1000))
}

func TestUpsertDocument(t *testing.T) {
	svc := newSvc(t)
	doc, n, err := svc.UpsertDocument("Rust management", "rust,fungicide", "Rotate fungicide classes.\nScout weekly during wet spells.", "https://extension.example/rust")
	require.NoError(t, err)
	assert.NotZero(t, doc.DocID)
	assert.Equal(t, 1, n)

	meta, err := svc.DocsMeta([]uint{doc.DocID})
	require.NoError(t, err)
	require.Contains(t, meta, doc.DocID)
	assert.Equal(t, "Rust management", meta[doc.DocID].Title)
}

func TestSearchKeywordFallback(t *testing.T) {
	svc := newSvc(t)
	_, _, err := svc.UpsertDocument("Rust management", "", "Rotate fungicide classes to slow pathogen resistance.", "")
	require.NoError(t, err)
	_, _, err = svc.UpsertDocument("Irrigation", "", "Drip irrigation cuts water use during drought.", "")
	require.NoError(t, err)

	hits, err := svc.Search("fungicide resistance", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0].Text, "fungicide")

	// multi-term queries rank chunks hitting more terms first
	_, _, err = svc.UpsertDocument("Combined", "", "Fungicide rotation also matters under drought irrigation.", "")
	require.NoError(t, err)
	hits, err = svc.Search("drought irrigation", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Contains(t, strings.ToLower(hits[0].Text), "drought")
	assert.Contains(t, strings.ToLower(hits[0].Text), "irrigation")
}

func TestSearchEmptyCases(t *testing.T) {
	svc := newSvc(t)

	hits, err := svc.Search("  ", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = svc.Search("anything", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = svc.Search("nomatch", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
