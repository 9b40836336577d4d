package http

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
	"github.com/reshetovitsme/mobile-portal/internal/modules/place/ldb"
	"github.com/reshetovitsme/mobile-portal/internal/shared/render"
)

func (s *Server) placeRoutes() {
	s.mux.HandleFunc("GET /places/{$}", s.handlePlaces)
	s.mux.HandleFunc("GET /places/{identifier}/{$}", s.handlePlace)
	s.mux.HandleFunc("GET /places/{identifier}/service/{$}", s.handlePlaceService)
}

func placeCrumbs(entity *domain.Entity) []render.Breadcrumb {
	crumbs := []render.Breadcrumb{{Title: "Live departures", URL: "/places/"}}
	if entity != nil {
		crumbs = append(crumbs, render.Breadcrumb{Title: entity.Title, URL: entity.URL()})
	}
	return crumbs
}

func (s *Server) handlePlaces(w http.ResponseWriter, r *http.Request) {
	stations, err := s.svc.Places.ListStations(r.Context())
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	s.renderer.Render(w, r, s.favouritable(r, render.Context{
		"title":       "Live departures",
		"breadcrumbs": placeCrumbs(nil),
		"stations":    stations,
	}), "places/index")
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	board, err := domain.ParseBoardType(r.URL.Query().Get("board"))
	if err != nil {
		board = domain.BoardTypeDepartures
	}

	entity, err := s.svc.Places.GetWithMetadata(r.Context(), r.PathValue("identifier"), board)
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	s.renderer.Render(w, r, s.favouritable(r, render.Context{
		"title":       entity.Title,
		"breadcrumbs": placeCrumbs(nil),
		"entity":      entity,
		"board":       ldb.BoardFromMetadata(entity.Metadata, board),
		"board_type":  board.String(),
	}), "places/entity")
}

func (s *Server) handlePlaceService(w http.ResponseWriter, r *http.Request) {
	entity, details, err := s.svc.Places.ServiceDetails(r.Context(), r.PathValue("identifier"), r.URL.Query().Get("id"))
	if err != nil {
		s.renderer.Error(w, r, err)
		return
	}

	service := ldb.NewServiceDetail(details)
	s.renderer.Render(w, r, render.Context{
		"title":       lo.CoalesceOrEmpty(service.LocationName, entity.Title),
		"breadcrumbs": placeCrumbs(entity),
		"entity":      entity,
		"service":     service,
	}, "places/service_detail")
}
