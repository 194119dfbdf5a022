package bibexport

import (
	"strings"
	"testing"

	"github.com/nickng/bibtex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sempozyum/internal/app/models"
)

func TestCiteKey(t *testing.T) {
	p := &models.Paper{ID: 17, AuthorName: "Ayşe Yılmaz"}
	assert.Equal(t, "yilmaz2026_17", CiteKey(p, 2026))

	assert.Equal(t, "paper2026_3", CiteKey(&models.Paper{ID: 3}, 2026))
}

func TestExportParsesBack(t *testing.T) {
	s := &models.Symposium{Title: "Bilişim Sempozyumu", Year: 2025, Location: "Ankara"}
	papers := []*models.Paper{
		{ID: 1, Title: "Graf Algoritmaları & Uygulamaları", AuthorName: "Ali Işık", CoAuthors: "Can Demir; Ece Kaya", Keywords: []string{"graf", "algoritma"}},
		{ID: 2, Title: "Doğruluk Analizi", AuthorName: "Zeynep Şen"},
	}

	out := Export(s, papers)
	assert.Contains(t, out, "@inproceedings")
	assert.Contains(t, out, `\&`)

	parsed, err := bibtex.Parse(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, parsed.Entries, 2)

	first := parsed.Entries[0]
	assert.Equal(t, "inproceedings", first.Type)
	assert.Equal(t, "isik2025_1", first.CiteName)
	require.Contains(t, first.Fields, "author")
	assert.Contains(t, first.Fields["author"].String(), "Ali Işık and Can Demir and Ece Kaya")
	assert.Contains(t, first.Fields["year"].String(), "2025")
}

func TestExportEmpty(t *testing.T) {
	out := Export(&models.Symposium{Title: "X", Year: 2024}, nil)
	assert.NotContains(t, out, "@inproceedings")
}
