package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/reshetovitsme/mobile-portal/internal/modules/podcast/domain"
	podcastService "github.com/reshetovitsme/mobile-portal/internal/modules/podcast/service"
	"github.com/reshetovitsme/mobile-portal/internal/shared/device"
	"github.com/reshetovitsme/mobile-portal/internal/shared/render"
)

const itunesuCookiePrefix = "itunesu_"

func podcastCrumbs(category *domain.Category) []render.Breadcrumb {
	crumbs := []render.Breadcrumb{{Title: "Podcasts", URL: podcastService.IndexURL}}
	if category != nil {
		crumbs = append(crumbs, render.Breadcrumb{Title: category.Name, URL: podcastService.IndexURL + category.Code + "/"})
	}
	return crumbs
}

func (s *Server) podcastRoutes() {
	s.mux.HandleFunc("GET /podcasts/{$}", s.handlePodcasts)
	s.mux.HandleFunc("POST /podcasts/itunesu/{$}", s.handleITunesU)
	s.mux.HandleFunc("GET /podcasts/top_downloads/{$}", s.handleTopDownloads)
	s.mux.HandleFunc("GET /podcasts/{code}/{$}", s.handlePodcastCategory)
	s.mux.HandleFunc("GET /podcasts/{code}/{medium}/{$}", s.handlePodcastCategory)
	s.mux.HandleFunc("GET /podcasts/{code}/podcast/{id}/{$}", s.handlePodcast)
}

// The iTunes U preference is remembered per device class, since a visitor
// may want iTunes U on a desktop but not on a phone.
func itunesuCookie(r *http.Request) string {
	return itunesuCookiePrefix + device.FromContext(r.Context()).Class.String()
}

func (s *Server) handlePodcasts(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.Podcasts.ListCategories(r.Context())
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	_, err = r.Cookie(itunesuCookie(r))
	show := errors.Is(err, http.ErrNoCookie) && r.URL.Query().Get("show_itunesu_link") != "false"

	s.renderer.Render(w, r, s.favouritable(r, render.Context{
		"title":             "Podcasts",
		"breadcrumbs":       podcastCrumbs(nil),
		"categories":        categories,
		"show_itunesu_link": show,
	}), "podcasts/index")
}

func (s *Server) handleITunesU(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirect(w, r, podcastService.IndexURL)
		return
	}

	use := r.PostForm.Get("use_itunesu") == "yes"
	remember := r.PostForm.Has("remember")
	noRedirect := r.PostForm.Has("no_redirect")

	if remember {
		value := "no"
		if use {
			value = "yes"
		}
		http.SetCookie(w, &http.Cookie{
			Name:     itunesuCookie(r),
			Value:    value,
			Path:     podcastService.IndexURL,
			MaxAge:   int(userCookieMaxAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	location := s.svc.Podcasts.ITunesURedirect(use, remember, noRedirect)
	if location == "" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		return
	}
	redirect(w, r, location)
}

func (s *Server) handleTopDownloads(w http.ResponseWriter, r *http.Request) {
	podcast, items, err := s.svc.Podcasts.TopDownloads(r.Context())
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	s.renderer.Render(w, r, s.favouritable(r, render.Context{
		"title":       "Top downloads",
		"breadcrumbs": podcastCrumbs(nil),
		"podcast":     podcast,
		"items":       items,
	}), "podcasts/podcast_detail")
}

func (s *Server) handlePodcastCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.svc.Podcasts.GetCategory(r.Context(), r.PathValue("code"))
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	var medium domain.Medium
	if raw := r.PathValue("medium"); raw != "" {
		if medium, err = domain.ParseMedium(raw); err != nil {
			s.renderer.NotFound(w, r)
			return
		}
	}

	podcasts, err := s.svc.Podcasts.ListPodcasts(r.Context(), category, medium)
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	s.renderer.Render(w, r, s.favouritable(r, render.Context{
		"title":       category.Name,
		"breadcrumbs": podcastCrumbs(category),
		"category":    category,
		"medium":      medium.String(),
		"media":       domain.MediumNames(),
		"podcasts":    podcasts,
	}), "podcasts/category_detail")
}

func (s *Server) handlePodcast(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.renderer.NotFound(w, r)
		return
	}

	category, podcast, err := s.svc.Podcasts.GetPodcast(r.Context(), r.PathValue("code"), id)
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	items, err := s.svc.Podcasts.ListItems(r.Context(), podcast)
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	s.renderer.Render(w, r, s.favouritable(r, render.Context{
		"title":       podcast.Title,
		"breadcrumbs": podcastCrumbs(category),
		"category":    category,
		"podcast":     podcast,
		"items":       items,
	}), "podcasts/podcast_detail")
}
