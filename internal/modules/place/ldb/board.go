package ldb

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
)

// Board is the view of a transformed station board used by templates.
type Board struct {
	LocationName string    `json:"location_name"`
	GeneratedAt  string    `json:"generated_at"`
	Services     []Service `json:"services"`
	Messages     []string  `json:"messages"`
	Error        bool      `json:"error"`
}

// Service is one row of a board.
type Service struct {
	ServiceID   string `json:"service_id"`
	Scheduled   string `json:"scheduled"`
	Expected    string `json:"expected"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Platform    string `json:"platform"`
	Operator    string `json:"operator"`
}

// CallingPoint is a stop on a service's route.
type CallingPoint struct {
	LocationName string `json:"location_name"`
	CRS          string `json:"crs"`
	Scheduled    string `json:"scheduled"`
	Expected     string `json:"expected"`
	Actual       string `json:"actual"`
}

// ServiceDetail is the view of a transformed GetServiceDetails result.
type ServiceDetail struct {
	LocationName string         `json:"location_name"`
	Operator     string         `json:"operator"`
	Platform     string         `json:"platform"`
	Scheduled    string         `json:"scheduled"`
	Expected     string         `json:"expected"`
	Previous     []CallingPoint `json:"previous"`
	Subsequent   []CallingPoint `json:"subsequent"`
}

// BoardFromMetadata builds the board view from an entity's metadata. It
// returns nil when no provider attached a board.
func BoardFromMetadata(metadata map[string]any, board domain.BoardType) *Board {
	raw, ok := metadata[MetadataBoard].(map[string]any)
	if !ok {
		return nil
	}
	if failed, _ := raw["error"].(bool); failed {
		return &Board{Error: true}
	}

	b := &Board{
		LocationName: str(raw, "locationName"),
		GeneratedAt:  clock(str(raw, "generatedAt")),
	}

	for _, group := range []string{"trainServices", "busServices", "ferryServices"} {
		for _, s := range items(child(raw, group), "service") {
			svc := Service{
				ServiceID:   str(s, "serviceID"),
				Origin:      locations(child(s, "origin")),
				Destination: locations(child(s, "destination")),
				Platform:    str(s, "platform"),
				Operator:    str(s, "operator"),
			}
			if board == domain.BoardTypeArrivals {
				svc.Scheduled, svc.Expected = str(s, "sta"), str(s, "eta")
			} else {
				svc.Scheduled, svc.Expected = str(s, "std"), str(s, "etd")
			}
			b.Services = append(b.Services, svc)
		}
	}

	if messages, ok := child(raw, "nrccMessages")["message"].([]any); ok {
		b.Messages = lo.FilterMap(messages, func(m any, _ int) (string, bool) {
			s, ok := m.(string)
			return s, ok && s != ""
		})
	}

	return b
}

// NewServiceDetail builds the view of a transformed service details result.
func NewServiceDetail(raw map[string]any) ServiceDetail {
	return ServiceDetail{
		LocationName: str(raw, "locationName"),
		Operator:     str(raw, "operator"),
		Platform:     str(raw, "platform"),
		Scheduled:    lo.CoalesceOrEmpty(str(raw, "std"), str(raw, "sta")),
		Expected:     lo.CoalesceOrEmpty(str(raw, "etd"), str(raw, "eta")),
		Previous:     callingPoints(child(raw, "previousCallingPoints")),
		Subsequent:   callingPoints(child(raw, "subsequentCallingPoints")),
	}
}

func callingPoints(m map[string]any) []CallingPoint {
	var points []CallingPoint
	for _, list := range items(m, "callingPointList") {
		for _, cp := range items(list, "callingPoint") {
			points = append(points, CallingPoint{
				LocationName: str(cp, "locationName"),
				CRS:          str(cp, "crs"),
				Scheduled:    str(cp, "st"),
				Expected:     str(cp, "et"),
				Actual:       str(cp, "at"),
			})
		}
	}
	return points
}

func locations(m map[string]any) string {
	names := lo.FilterMap(items(m, "location"), func(l map[string]any, _ int) (string, bool) {
		name := str(l, "locationName")
		return name, name != ""
	})
	return strings.Join(names, " & ")
}

func clock(generatedAt string) string {
	t, err := time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return generatedAt
	}
	return t.Format("15:04")
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func child(m map[string]any, key string) map[string]any {
	c, _ := m[key].(map[string]any)
	return c
}

func items(m map[string]any, key string) []map[string]any {
	list, _ := m[key].([]any)
	return lo.FilterMap(list, func(v any, _ int) (map[string]any, bool) {
		item, ok := v.(map[string]any)
		return item, ok
	})
}
