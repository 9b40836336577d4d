package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/domain"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
	"github.com/reshetovitsme/mobile-portal/internal/shared/render"
)

const featuresURL = "/features/"

var featureCrumbs = []render.Breadcrumb{{Title: "Feature suggestions", URL: featuresURL}}

func (s *Server) renderFeatures(w http.ResponseWriter, r *http.Request, submitted bool, form *domain.Form) {
	features, err := s.svc.Features.ListPublic(r.Context())
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	s.renderer.Render(w, r, s.favouritable(r, render.Context{
		"title":       "Feature suggestions",
		"breadcrumbs": featureCrumbs,
		"submitted":   submitted,
		"features":    features,
		"form":        form,
	}), "features/index")
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	s.renderFeatures(w, r, r.URL.Query().Get("submitted") == "true", &domain.Form{})
}

func (s *Server) handleFeaturesPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirect(w, r, featuresURL)
		return
	}

	form := &domain.Form{
		UserName:    r.PostForm.Get("user_name"),
		UserEmail:   r.PostForm.Get("user_email"),
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
	}

	_, err := s.svc.Features.Submit(r.Context(), form)
	if errors.Is(err, portalErrors.ErrInvalidForm) {
		s.renderFeatures(w, r, false, form)
		return
	}
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	redirect(w, r, featuresURL+"?submitted=true")
}

func (s *Server) handleFeature(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.renderer.NotFound(w, r)
		return
	}

	feature, err := s.svc.Features.Get(r.Context(), id)
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	vote, err := s.svc.Features.UserVote(r.Context(), userID(r), id)
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	s.renderer.Render(w, r, s.favouritable(r, render.Context{
		"title":       feature.Title,
		"breadcrumbs": featureCrumbs,
		"feature":     feature,
		"description": string(s.svc.Features.RenderDescription(feature)),
		"user_vote":   int(vote),
	}), "features/detail")
}

func (s *Server) handleFeatureVote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.renderer.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		redirect(w, r, featuresURL)
		return
	}

	direction, err := domain.ParseDirection(r.PostForm.Get("direction"))
	if err != nil {
		redirect(w, r, (&domain.Feature{ID: id}).URL())
		return
	}

	feature, err := s.svc.Features.Vote(r.Context(), userID(r), id, direction)
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	redirect(w, r, feature.URL())
}
