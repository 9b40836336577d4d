package http

import (
	"errors"
	"net/http"

	portalErrors "github.com/reshetovitsme/mobile-portal/internal/shared/errors"
	"github.com/reshetovitsme/mobile-portal/internal/shared/render"
)

const favouritesURL = "/favourites/"

func (s *Server) handleFavourites(w http.ResponseWriter, r *http.Request) {
	favourites, err := s.svc.Favourites.List(r.Context(), userID(r))
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	s.renderer.Render(w, r, render.Context{
		"title":       "Favourites",
		"breadcrumbs": []render.Breadcrumb{{Title: "Favourites", URL: favouritesURL}},
		"favourites":  favourites,
	}, "favourites/index")
}

// handleFavouritesPost adds or removes the posted URL, then returns to the
// favourites list or to the page itself.
func (s *Server) handleFavouritesPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || !r.PostForm.Has("URL") {
		redirect(w, r, favouritesURL)
		return
	}

	ctx := r.Context()
	target := r.PostForm.Get("URL")

	switch {
	case r.PostForm.Has("favourite"):
		err := s.svc.Favourites.Add(ctx, userID(r), target)
		if errors.Is(err, portalErrors.ErrInvalidFavourite) {
			redirect(w, r, favouritesURL)
			return
		}
		if err != nil {
			s.renderer.Error(w, r, err)
			return
		}
	case r.PostForm.Has("unfavourite"):
		if err := s.svc.Favourites.Remove(ctx, userID(r), target); err != nil {
			s.renderer.Error(w, r, err)
			return
		}
	}

	if r.PostForm.Has("return_to_favourites") || !s.svc.Favourites.Valid(target) {
		redirect(w, r, favouritesURL)
		return
	}
	redirect(w, r, target)
}
