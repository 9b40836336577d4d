package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/reshetovitsme/mobile-portal/internal/modules/feedback/domain"
	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
	"github.com/reshetovitsme/mobile-portal/internal/shared/render"
)

const feedbackURL = "/feedback/"

func (s *Server) renderFeedback(w http.ResponseWriter, r *http.Request, sent bool, referer string, form *domain.Form) {
	s.renderer.Render(w, r, render.Context{
		"title":       "Feedback",
		"breadcrumbs": []render.Breadcrumb{{Title: "Feedback", URL: feedbackURL}},
		"sent":        sent,
		"referer":     referer,
		"form":        form,
	}, "feedback/index")
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.renderFeedback(w, r, q.Get("sent") == "true", q.Get("referer"), &domain.Form{})
}

func (s *Server) handleFeedbackPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirect(w, r, feedbackURL)
		return
	}

	form := &domain.Form{
		Email:   r.PostForm.Get("email"),
		Body:    r.PostForm.Get("body"),
		Referer: r.PostForm.Get("referer"),
	}

	_, err := s.svc.Feedback.Submit(r.Context(), form)
	if errors.Is(err, portalErrors.ErrInvalidForm) {
		s.renderFeedback(w, r, false, form.Referer, form)
		return
	}
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	q := url.Values{"sent": {"true"}, "referer": {form.Referer}}
	redirect(w, r, feedbackURL+"?"+q.Encode())
}
