package http

import (
	"net/http"
	"time"

	userDomain "github.com/reshetovitsme/mobile-portal/internal/modules/user/domain"
	"github.com/reshetovitsme/mobile-portal/internal/shared/render"
)

const (
	userCookie       = "portal_uid"
	userCookieMaxAge = 5 * 365 * 24 * time.Hour
)

// identify attaches the anonymous visitor to the request, issuing a new
// identity cookie when the browser has none.
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		var current string
		if c, err := r.Cookie(userCookie); err == nil {
			current = c.Value
		}

		user, err := s.svc.Users.Identify(r.Context(), current)
		if err != nil {
			s.renderer.Error(w, r, err)
			return
		}

		if user.ID != current {
			http.SetCookie(w, &http.Cookie{
				Name:     userCookie,
				Value:    user.ID,
				Path:     "/",
				MaxAge:   int(userCookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(userDomain.WithUser(r.Context(), user)))
	})
}

func userID(r *http.Request) string {
	if user := userDomain.FromContext(r.Context()); user != nil {
		return user.ID
	}
	return ""
}

// favouritable marks the page as one the visitor can save.
func (s *Server) favouritable(r *http.Request, data render.Context) render.Context {
	data["is_favouritable"] = true
	data["favourite_url"] = r.URL.Path

	isFavourite, err := s.svc.Favourites.IsFavourite(r.Context(), userID(r), r.URL.Path)
	if err != nil {
		s.logger.Warn("Could not check favourite", "path", r.URL.Path, "error", err)
	}
	data["is_favourite"] = isFavourite
	return data
}
