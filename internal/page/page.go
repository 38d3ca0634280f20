// Package page renders the static catalog page and the failure notice.
package page

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jperret21/GW-event-viz/internal/catalog"
	"github.com/jperret21/GW-event-viz/internal/classify"
	"github.com/jperret21/GW-event-viz/internal/model"
	"github.com/jperret21/GW-event-viz/internal/plot"
	"github.com/jperret21/GW-event-viz/internal/util"
)

const (
	IndexFile = "index.html"
	ViewsFile = "views.json"
)

var funcMap = template.FuncMap{
	"typeColor": func(t string) string {
		return classify.Color(model.SourceType(t))
	},
	"fmtCount": fmtCount,
}

var writeFile = util.WriteFileAtomic

var (
	pageTmpl    = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplPage))
	failureTmpl = template.Must(template.New("failure").Funcs(funcMap).Parse(tmplBase + tmplFailure))
)

type Options struct {
	Title       string
	ChartLibURL string
}

type PageData struct {
	Title        string
	ChartLibURL  string
	Updated      string
	EventCount   int
	UniqueEvents int
	Views        []plot.View
}

// NewPageData computes every view of snap.
func NewPageData(snap *catalog.Snapshot, opts Options) PageData {
	unique, ok := snap.DeclaredUnique()
	if !ok {
		unique = len(snap.Unique())
	}
	updated := snap.Updated()
	if updated == "" {
		updated = "unknown"
	}
	return PageData{
		Title:        opts.Title,
		ChartLibURL:  opts.ChartLibURL,
		Updated:      updated,
		EventCount:   snap.EventCount(),
		UniqueEvents: unique,
		Views:        plot.BuildAll(snap),
	}
}

func Render(w io.Writer, data PageData) error {
	if len(data.Views) == 0 {
		return errors.New("page: no views to render")
	}
	return pageTmpl.ExecuteTemplate(w, "base", data)
}

// RenderFailure writes the fixed notice shown when the catalog cannot be
// loaded. It carries no scripts.
func RenderFailure(w io.Writer, title string) error {
	return failureTmpl.ExecuteTemplate(w, "base", struct{ Title string }{title})
}

// WriteSite renders index.html and views.json into dir.
func WriteSite(dir string, snap *catalog.Snapshot, opts Options) error {
	data := NewPageData(snap, opts)

	var buf bytes.Buffer
	if err := Render(&buf, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	views, err := json.MarshalIndent(data.Views, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal views: %w", err)
	}
	viewsPath := filepath.Join(dir, ViewsFile)
	if err := writeFile(viewsPath, views, 0o644); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, IndexFile), buf.Bytes(), 0o644); err != nil {
		// views.json alone would not match the page left in place
		_ = os.Remove(viewsPath)
		return err
	}
	return nil
}

// WriteFailure replaces index.html in dir with the failure notice and drops
// the views.json of an earlier run.
func WriteFailure(dir string, opts Options) error {
	var buf bytes.Buffer
	if err := RenderFailure(&buf, opts.Title); err != nil {
		return fmt.Errorf("render failure page: %w", err)
	}
	if err := writeFile(filepath.Join(dir, IndexFile), buf.Bytes(), 0o644); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(dir, ViewsFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stale views: %w", err)
	}
	return nil
}

func fmtCount(n int) string {
	s := strconv.Itoa(n)
	if n < 1000 && n > -1000 {
		return s
	}
	neg := s[0] == '-'
	if neg {
		s = s[1:]
	}
	var out []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
