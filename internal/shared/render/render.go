// Package render turns a handler's data context into a response suited to
// the requesting device.
package render

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/reshetovitsme/mobile-portal/internal/shared/device"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

const defaultTitle = "Mobile Portal"

// Context is the data handed from a page handler to a template.
type Context map[string]any

// Breadcrumb is one step of the navigation trail shown above a page.
type Breadcrumb struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Representation is one way of writing a page. The first representation
// accepting a request wins.
type Representation interface {
	Accepts(r *http.Request, p device.Profile) bool
	Write(w http.ResponseWriter, p device.Profile, status int, data Context, templateID string) error
}

// Renderer dispatches to the representation matching the client.
type Renderer struct {
	representations []Representation
	logger          *slog.Logger
}

// New builds a renderer with the JSON and embedded HTML representations.
func New(logger *slog.Logger) (*Renderer, error) {
	pages, err := NewHTML()
	if err != nil {
		return nil, err
	}
	return NewWith(logger, JSON{}, pages), nil
}

// NewWith builds a renderer from explicit representations, tried in order.
func NewWith(logger *slog.Logger, representations ...Representation) *Renderer {
	return &Renderer{
		representations: representations,
		logger:          logger.With("component", "renderer"),
	}
}

// Render writes data with a 200 status.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, data Context, templateID string) {
	rd.RenderStatus(w, r, http.StatusOK, data, templateID)
}

// RenderStatus writes data using the first representation that accepts the request.
func (rd *Renderer) RenderStatus(w http.ResponseWriter, r *http.Request, status int, data Context, templateID string) {
	profile := device.FromContext(r.Context())
	data = withDefaults(data, r, profile)

	for _, rep := range rd.representations {
		if !rep.Accepts(r, profile) {
			continue
		}
		if err := rep.Write(w, profile, status, data, templateID); err != nil {
			rd.logger.Error("Error rendering page", "template", templateID, "device", profile.Class, "error", err)
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
		return
	}

	rd.logger.Error("No representation accepts request", "template", templateID, "device", profile.Class)
	http.Error(w, "Not acceptable", http.StatusNotAcceptable)
}

// NotFound renders the standard missing resource page.
func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rd.RenderStatus(w, r, http.StatusNotFound, Context{
		"title":   "Not found",
		"message": "The page you were looking for could not be found.",
	}, "errors/not_found")
}

// Error maps err to a not found page or a generic server error page.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, portalErrors.ErrNotFound) {
		rd.NotFound(w, r)
		return
	}

	rd.logger.Error("Error handling request", "path", r.URL.Path, "error", err)
	rd.RenderStatus(w, r, http.StatusInternalServerError, Context{
		"title":   "Error",
		"message": "Something went wrong while preparing this page.",
	}, "errors/server_error")
}

func withDefaults(data Context, r *http.Request, p device.Profile) Context {
	if data == nil {
		data = Context{}
	}
	if _, ok := data["title"]; !ok {
		data["title"] = defaultTitle
	}
	if _, ok := data["breadcrumbs"]; !ok {
		data["breadcrumbs"] = []Breadcrumb{}
	}
	data["device"] = p
	data["path"] = r.URL.Path
	return data
}
