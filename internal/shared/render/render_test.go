package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/mobile-portal/internal/shared/database/dbtest"
	"github.com/reshetovitsme/mobile-portal/internal/shared/device"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	rd, err := New(dbtest.Logger())
	require.NoError(t, err)
	return rd
}

func requestFor(class device.Class, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(device.WithProfile(req.Context(), device.ForClass(class)))
}

func TestRender_SmartLayout(t *testing.T) {
	rd := newRenderer(t)
	rec := httptest.NewRecorder()

	rd.Render(rec, requestFor(device.ClassSmart, "/"), Context{
		"title": "Home",
		"apps": []struct{ Name, URL, Description string }{
			{Name: "News", URL: "/news/", Description: "University news"},
		},
	}, "home/index")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "User-Agent", rec.Header().Get("Vary"))
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, `<a href="/news/">News</a>`)
	assert.Contains(t, body, "University news")
}

func TestRender_BasicLayout(t *testing.T) {
	rd := newRenderer(t)
	rec := httptest.NewRecorder()

	rd.Render(rec, requestFor(device.ClassBasic, "/"), Context{
		"apps": []struct{ Name, URL, Description string }{
			{Name: "News", URL: "/news/", Description: "University news"},
		},
	}, "home/index")

	assert.Equal(t, "application/xhtml+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "XHTML Mobile")
	assert.NotContains(t, body, "University news")
	assert.Contains(t, body, "<title>"+defaultTitle+"</title>")
}

func TestRender_JSON(t *testing.T) {
	rd := newRenderer(t)
	rec := httptest.NewRecorder()

	rd.Render(rec, requestFor(device.ClassSmart, "/places/crs:OXF/?format=json"), Context{
		"title":    "Oxford",
		"callback": func() string { return "dropped" },
	}, "places/entity")

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Oxford", got["title"])
	assert.Equal(t, "/places/crs:OXF/", got["path"])
	assert.NotContains(t, got, "callback")
}

func TestRender_AcceptHeaderSelectsJSON(t *testing.T) {
	rd := newRenderer(t)
	rec := httptest.NewRecorder()
	req := requestFor(device.ClassDesktop, "/")
	req.Header.Set("Accept", "application/json")

	rd.Render(rec, req, Context{"apps": []any{}}, "home/index")

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRender_FavouriteControls(t *testing.T) {
	rd := newRenderer(t)
	rec := httptest.NewRecorder()

	rd.Render(rec, requestFor(device.ClassSmart, "/news/"), Context{
		"feeds":           []any{},
		"is_favouritable": true,
		"is_favourite":    true,
		"favourite_url":   "/news/",
	}, "feeds/index")

	body := rec.Body.String()
	assert.Contains(t, body, `name="unfavourite"`)
	assert.Contains(t, body, `value="/news/"`)
}

func TestRender_NullableDates(t *testing.T) {
	rd := newRenderer(t)
	rec := httptest.NewRecorder()
	start := time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC)

	type event struct {
		ID           int64
		Title        string
		DTStart      *time.Time
		LocationName string
	}
	type feed struct {
		Title, URL   string
		LastModified time.Time
	}

	rd.Render(rec, requestFor(device.ClassSmart, "/events/talks/"), Context{
		"feed": feed{Title: "Talks", URL: "/events/talks/"},
		"items": []event{
			{ID: 1, Title: "Lecture", DTStart: &start, LocationName: "Exam Schools"},
			{ID: 2, Title: "Unscheduled"},
		},
	}, "feeds/event_list")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Contains(t, body, "Fri, 01 May 2026 18:30, Exam Schools")
	assert.Contains(t, body, `href="/events/talks/2/"`)
}

func TestNotFound(t *testing.T) {
	rd := newRenderer(t)
	rec := httptest.NewRecorder()

	rd.Error(rec, requestFor(device.ClassDesktop, "/missing/"), portalErrors.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be found")
}

func TestError_ServerError(t *testing.T) {
	rd := newRenderer(t)
	rec := httptest.NewRecorder()

	rd.Error(rec, requestFor(device.ClassDesktop, "/"), errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestUnknownTemplate(t *testing.T) {
	rd := newRenderer(t)
	rec := httptest.NewRecorder()

	rd.Render(rec, requestFor(device.ClassDesktop, "/"), nil, "does/not/exist")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPlain(t *testing.T) {
	in := map[string]any{
		"keep": "value",
		"fn":   func() {},
		"nested": map[string]any{
			"fn":   func() int { return 1 },
			"list": []any{1, func() {}, "two"},
		},
	}

	got := Plain(in).(map[string]any)
	assert.Equal(t, "value", got["keep"])
	assert.NotContains(t, got, "fn")
	nested := got["nested"].(map[string]any)
	assert.NotContains(t, nested, "fn")
	assert.Equal(t, []any{1, "two"}, nested["list"])
}

func TestEveryPageParses(t *testing.T) {
	h, err := NewHTML()
	require.NoError(t, err)

	for class := range layouts {
		set := h.sets[class]
		require.NotEmpty(t, set)
		for id := range set {
			assert.False(t, strings.HasSuffix(id, ".html"), id)
		}
		assert.Contains(t, set, "places/entity")
		assert.Contains(t, set, "errors/not_found")
	}
}
