package render

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/shared/device"
)

//go:embed templates
var templatesFS embed.FS

// HTML renders embedded page templates inside a layout chosen by device
// class: basic handsets get XHTML-MP without styling, everything else the
// smart layout.
type HTML struct {
	sets map[device.Class]map[string]*template.Template
}

var layouts = map[device.Class]string{
	device.ClassDesktop: "templates/layouts/smart.html",
	device.ClassSmart:   "templates/layouts/smart.html",
	device.ClassBasic:   "templates/layouts/basic.html",
}

var contentTypes = map[device.Class]string{
	device.ClassDesktop: "text/html; charset=utf-8",
	device.ClassSmart:   "text/html; charset=utf-8",
	device.ClassBasic:   "application/xhtml+xml; charset=utf-8",
}

var funcs = template.FuncMap{
	"safe":     func(s string) template.HTML { return template.HTML(s) },
	"date":     formatTime("Mon, 02 Jan 2006"),
	"datetime": formatTime("Mon, 02 Jan 2006 15:04"),
	"basic":    func(p device.Profile) bool { return p.Basic() },
}

// formatTime accepts both time.Time and the *time.Time used for nullable columns.
func formatTime(layout string) func(any) string {
	return func(v any) string {
		switch t := v.(type) {
		case time.Time:
			if !t.IsZero() {
				return t.Format(layout)
			}
		case *time.Time:
			if t != nil && !t.IsZero() {
				return t.Format(layout)
			}
		}
		return ""
	}
}

// NewHTML parses every page once per layout.
func NewHTML() (*HTML, error) {
	return newHTML(templatesFS)
}

func newHTML(fsys fs.FS) (*HTML, error) {
	var pages []string
	err := fs.WalkDir(fsys, "templates/pages", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == ".html" {
			pages = append(pages, p)
		}
		return nil
	})
	if err != nil {
		return nil, oops.With("context", "failed to list page templates").Wrap(err)
	}

	h := &HTML{sets: make(map[device.Class]map[string]*template.Template)}
	for class, layout := range layouts {
		set := make(map[string]*template.Template, len(pages))
		for _, page := range pages {
			t, err := template.New(path.Base(layout)).Funcs(funcs).ParseFS(fsys, layout, "templates/partials/*.html", page)
			if err != nil {
				return nil, oops.With("page", page, "layout", layout).Wrap(err)
			}
			set[pageID(page)] = t
		}
		h.sets[class] = set
	}

	return h, nil
}

func pageID(p string) string {
	return strings.TrimSuffix(strings.TrimPrefix(p, "templates/pages/"), ".html")
}

// Accepts every request; HTML is the fallback representation.
func (h *HTML) Accepts(*http.Request, device.Profile) bool {
	return true
}

func (h *HTML) Write(w http.ResponseWriter, p device.Profile, status int, data Context, templateID string) error {
	set, ok := h.sets[p.Class]
	if !ok {
		set = h.sets[device.ClassDesktop]
	}

	t, ok := set[templateID]
	if !ok {
		return oops.With("template", templateID).Errorf("unknown template")
	}

	// Render fully before writing so a template error can still become a 500.
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return oops.With("template", templateID).Wrap(err)
	}

	w.Header().Set("Content-Type", contentTypes[p.Class])
	w.Header().Set("Vary", "User-Agent")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}
