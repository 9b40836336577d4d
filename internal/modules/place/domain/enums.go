//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// BoardType selects which live board is requested for a station
// ENUM(departures,arrivals)
type BoardType string
