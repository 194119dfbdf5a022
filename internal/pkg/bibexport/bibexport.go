// Package bibexport renders accepted papers as BibTeX @inproceedings entries.
package bibexport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nickng/bibtex"
	"github.com/yigit/sempozyum/internal/app/models"
	"github.com/yigit/sempozyum/internal/pkg/textnorm"
)

// ContentType is the media type of the export
const ContentType = "text/x-bibtex; charset=utf-8"

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"{", `\{`,
	"}", `\}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
)

func escape(s string) string {
	return latexEscaper.Replace(strings.TrimSpace(s))
}

// CiteKey builds a key such as "yilmaz2026_17" from the author's last name
func CiteKey(p *models.Paper, year int) string {
	name := textnorm.Slug(lastWord(p.AuthorName))
	if name == "" {
		name = "paper"
	}
	return fmt.Sprintf("%s%d_%d", name, year, p.ID)
}

func lastWord(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}

// authors joins the submitting author and free-text co-authors with "and"
func authors(p *models.Paper) string {
	list := []string{}
	if p.AuthorName != "" {
		list = append(list, p.AuthorName)
	}
	for _, a := range strings.FieldsFunc(p.CoAuthors, func(r rune) bool { return r == ',' || r == ';' }) {
		if a = strings.TrimSpace(a); a != "" {
			list = append(list, a)
		}
	}
	return strings.Join(list, " and ")
}

// Entry converts one paper to a BibTeX entry
func Entry(s *models.Symposium, p *models.Paper) *bibtex.BibEntry {
	e := bibtex.NewBibEntry("inproceedings", CiteKey(p, s.Year))
	e.AddField("title", bibtex.NewBibConst(escape(p.Title)))
	if a := authors(p); a != "" {
		e.AddField("author", bibtex.NewBibConst(escape(a)))
	}
	e.AddField("booktitle", bibtex.NewBibConst(escape(s.Title)))
	e.AddField("year", bibtex.NewBibConst(strconv.Itoa(s.Year)))
	if s.Location != "" {
		e.AddField("address", bibtex.NewBibConst(escape(s.Location)))
	}
	if len(p.Keywords) > 0 {
		e.AddField("keywords", bibtex.NewBibConst(escape(strings.Join(p.Keywords, ", "))))
	}
	if p.Abstract != "" {
		e.AddField("abstract", bibtex.NewBibConst(escape(p.Abstract)))
	}
	if p.Language != "" {
		e.AddField("language", bibtex.NewBibConst(escape(p.Language)))
	}
	return e
}

// Export renders all papers of a symposium as a BibTeX document
func Export(s *models.Symposium, papers []*models.Paper) string {
	bib := bibtex.NewBibTex()
	for _, p := range papers {
		bib.AddEntry(Entry(s, p))
	}
	return bib.String()
}
