// Package render turns views of the tree into HTML pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"gimm/internal/genealogy/descendant"
	"gimm/internal/genealogy/index"
	"gimm/internal/genealogy/models"
	"gimm/internal/genealogy/pedigree"
	"gimm/internal/genealogy/search"
	"gimm/internal/genealogy/sheet"
	"gimm/internal/genealogy/surname"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded page templates. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// page is the data every template receives.
type page struct {
	Title string
	Meta  models.Metadata
	Body  any
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Sheet renders one person's page.
func (r *Renderer) Sheet(meta models.Metadata, s *sheet.Sheet) (string, error) {
	return r.execute("sheet.html", page{Title: displayName(s.Individual), Meta: meta, Body: s})
}

type chart[T any] struct {
	Root   T
	Levels int
	Count  int
	Gens   int
	Person *models.Individual
}

// Pedigree renders an ancestor chart built with the given level budget.
func (r *Renderer) Pedigree(meta models.Metadata, root *pedigree.Node, levels int) (string, error) {
	body := chart[*pedigree.Node]{Root: root, Levels: levels, Count: root.Count(), Gens: root.Generations(), Person: root.Individual}
	return r.execute("pedigree.html", page{Title: "Ancestors of " + displayName(root.Individual), Meta: meta, Body: body})
}

// Descendants renders a descendant chart built with the given level budget.
func (r *Renderer) Descendants(meta models.Metadata, root *descendant.Node, levels int) (string, error) {
	body := chart[*descendant.Node]{Root: root, Levels: levels, Count: root.Count(), Gens: root.Generations(), Person: root.Individual}
	return r.execute("descendants.html", page{Title: "Descendants of " + displayName(root.Individual), Meta: meta, Body: body})
}

type master struct {
	Directory []index.Page
	First     index.Page
	Total     int
}

// Master renders the directory of visible index pages followed by page 0.
func (r *Renderer) Master(meta models.Metadata, ix *index.Index, total int) (string, error) {
	body := master{Directory: ix.Visible(), Total: total}
	if visible := ix.Visible(); len(visible) > 0 {
		body.First = visible[0]
	}
	return r.execute("master.html", page{Title: "Index of Individuals", Meta: meta, Body: body})
}

type indexPage struct {
	Page     index.Page
	Position int
	Prev     int
	Next     int
	Pages    int
}

// IndexPage renders visible page n of ix.
func (r *Renderer) IndexPage(meta models.Metadata, ix *index.Index, n int) (string, error) {
	p, err := ix.Page(n)
	if err != nil {
		return "", err
	}
	pages := len(ix.Visible())
	body := indexPage{Page: p, Position: n, Prev: n - 1, Next: n + 1, Pages: pages}
	if body.Next >= pages {
		body.Next = -1
	}
	title := fmt.Sprintf("Index page %d of %d", n+1, pages)
	return r.execute("index.html", page{Title: title, Meta: meta, Body: body})
}

// Surnames renders the surname index.
func (r *Renderer) Surnames(meta models.Metadata, entries []surname.Entry) (string, error) {
	return r.execute("surnames.html", page{Title: "Surnames", Meta: meta, Body: entries})
}

// Search renders the search form and, for a non-empty query, its results.
func (r *Renderer) Search(meta models.Metadata, res search.Result) (string, error) {
	return r.execute("search.html", page{Title: "Search", Meta: meta, Body: res})
}

func (r *Renderer) execute(name string, data page) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", strings.TrimSuffix(name, ".html"), err)
	}
	return buf.String(), nil
}
