package http

import (
	"net/http"
	"strconv"

	"github.com/reshetovitsme/mobile-portal/internal/modules/feed/domain"
	"github.com/reshetovitsme/mobile-portal/internal/shared/device"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
	"github.com/reshetovitsme/mobile-portal/internal/shared/render"
)

var feedTitles = map[domain.FeedType]string{
	domain.FeedTypeNews:  "News",
	domain.FeedTypeEvent: "Events",
}

func (s *Server) feedRoutes() {
	for feedType := range feedTitles {
		prefix := "GET " + feedType.Prefix()
		s.mux.HandleFunc(prefix+"{$}", s.handleFeeds(feedType))
		s.mux.HandleFunc(prefix+"{slug}/{$}", s.handleFeedItems(feedType))
		s.mux.HandleFunc(prefix+"{slug}/{id}/{$}", s.handleFeedItem(feedType))
		s.mux.HandleFunc(prefix+"{slug}/rss", s.handleSyndication(feedType, "rss"))
		s.mux.HandleFunc(prefix+"{slug}/atom", s.handleSyndication(feedType, "atom"))
	}
}

func feedCrumbs(feedType domain.FeedType) []render.Breadcrumb {
	return []render.Breadcrumb{{Title: feedTitles[feedType], URL: feedType.Prefix()}}
}

func (s *Server) handleFeeds(feedType domain.FeedType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feeds, err := s.svc.Feeds.ListFeeds(r.Context(), feedType)
		if err != nil {
			s.renderer.Error(w, r, err)
			return
		}

		s.renderer.Render(w, r, s.favouritable(r, render.Context{
			"title":       feedTitles[feedType],
			"breadcrumbs": feedCrumbs(feedType),
			"feeds":       feeds,
		}), "feeds/index")
	}
}

func (s *Server) handleFeedItems(feedType domain.FeedType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feed, err := s.svc.Feeds.GetFeed(r.Context(), feedType, r.PathValue("slug"))
		if err != nil {
			s.renderer.Error(w, r, err)
			return
		}

		items, err := s.svc.Feeds.ListItems(r.Context(), feed)
		if err != nil {
			s.renderer.Error(w, r, err)
			return
		}

		templateID := "feeds/item_list"
		if feedType == domain.FeedTypeEvent {
			templateID = "feeds/event_list"
		}

		s.renderer.Render(w, r, s.favouritable(r, render.Context{
			"title":       feed.Title,
			"breadcrumbs": append(feedCrumbs(feedType), render.Breadcrumb{Title: feed.Title, URL: feed.URL()}),
			"feed":        feed,
			"items":       items,
		}), templateID)
	}
}

func (s *Server) handleFeedItem(feedType domain.FeedType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			s.renderer.Error(w, r, portalErrors.ErrNotFound)
			return
		}

		feed, item, err := s.svc.Feeds.GetItem(r.Context(), feedType, r.PathValue("slug"), id)
		if err != nil {
			s.renderer.Error(w, r, err)
			return
		}

		profile := device.FromContext(r.Context())
		s.renderer.Render(w, r, s.favouritable(r, render.Context{
			"title":       item.Title,
			"breadcrumbs": append(feedCrumbs(feedType), render.Breadcrumb{Title: feed.Title, URL: feed.URL()}),
			"feed":        feed,
			"item":        item,
			"description": s.svc.Feeds.DescriptionForDevice(item, profile),
		}), "feeds/item_detail")
	}
}

func (s *Server) handleSyndication(feedType domain.FeedType, format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feed, err := s.svc.Feeds.GetFeed(r.Context(), feedType, r.PathValue("slug"))
		if err != nil {
			s.renderer.Error(w, r, err)
			return
		}

		out, err := s.svc.Feeds.GenerateFeed(r.Context(), feed, baseURL(r))
		if err != nil {
			s.logger.Error("Error generating feed", "slug", feed.Slug, "error", err)
			http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
			return
		}

		var body, contentType string
		if format == "atom" {
			body, err = out.ToAtom()
			contentType = "application/atom+xml; charset=utf-8"
		} else {
			body, err = out.ToRss()
			contentType = "application/rss+xml; charset=utf-8"
		}
		if err != nil {
			s.logger.Error("Error serializing feed", "slug", feed.Slug, "format", format, "error", err)
			http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}
