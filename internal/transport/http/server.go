package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	sloghttp "github.com/samber/slog-http"

	favouriteService "github.com/reshetovitsme/mobile-portal/internal/modules/favourite/service"
	featureService "github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/service"
	feedService "github.com/reshetovitsme/mobile-portal/internal/modules/feed/service"
	feedbackService "github.com/reshetovitsme/mobile-portal/internal/modules/feedback/service"
	placeService "github.com/reshetovitsme/mobile-portal/internal/modules/place/service"
	podcastService "github.com/reshetovitsme/mobile-portal/internal/modules/podcast/service"
	userService "github.com/reshetovitsme/mobile-portal/internal/modules/user/service"
	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
	"github.com/reshetovitsme/mobile-portal/internal/shared/device"
	"github.com/reshetovitsme/mobile-portal/internal/shared/render"
)

// Services are the modules the web pages are built from
type Services struct {
	Feeds      *feedService.Service
	Podcasts   *podcastService.Service
	Places     *placeService.Service
	Favourites *favouriteService.Service
	Feedback   *feedbackService.Service
	Features   *featureService.Service
	Users      *userService.Service
}

// Server serves the portal's pages
type Server struct {
	cfg      config.HTTPConfig
	mux      *http.ServeMux
	renderer *render.Renderer
	svc      Services
	logger   *slog.Logger
	server   *http.Server
}

// New creates a new HTTP server and registers its routes on mux
func New(cfg config.HTTPConfig, mux *http.ServeMux, renderer *render.Renderer, svc Services, logger *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		mux:      mux,
		renderer: renderer,
		svc:      svc,
		logger:   logger.With("component", "http"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.feedRoutes()
	s.podcastRoutes()
	s.placeRoutes()

	s.mux.HandleFunc("GET /favourites/{$}", s.handleFavourites)
	s.mux.HandleFunc("POST /favourites/{$}", s.handleFavouritesPost)

	s.mux.HandleFunc("GET /feedback/{$}", s.handleFeedback)
	s.mux.HandleFunc("POST /feedback/{$}", s.handleFeedbackPost)

	s.mux.HandleFunc("GET /features/{$}", s.handleFeatures)
	s.mux.HandleFunc("POST /features/{$}", s.handleFeaturesPost)
	s.mux.HandleFunc("GET /features/{id}/{$}", s.handleFeature)
	s.mux.HandleFunc("POST /features/{id}/vote", s.handleFeatureVote)
}

// Handler wraps the routes with recovery, request logging, device
// detection and visitor identity.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = s.identify(handler)
	handler = device.Middleware(handler)
	handler = sloghttp.Recovery(handler)
	handler = sloghttp.New(s.logger)(handler)
	return handler
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	s.logger.Info("HTTP server starting", "addr", addr)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for active requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type app struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

var apps = []app{
	{"News", "/news/", "Latest news from around the university"},
	{"Events", "/events/", "Lectures, talks and exhibitions coming up"},
	{"Podcasts", "/podcasts/", "Audio and video from lectures and interviews"},
	{"Live departures", "/places/", "Trains leaving nearby stations"},
	{"Favourites", "/favourites/", "Pages you have saved"},
	{"Feature suggestions", "/features/", "Suggest and vote on improvements"},
	{"Feedback", "/feedback/", "Tell us what you think"},
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderer.Render(w, r, render.Context{
		"title": "Mobile Portal",
		"apps":  apps,
	}, "home/index")
}

func baseURL(r *http.Request) string {
	return fmt.Sprintf("%s://%s", getScheme(r), r.Host)
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

// redirect answers a form post with a 303 so the browser follows up with GET
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}
