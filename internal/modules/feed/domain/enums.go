//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// FeedType separates news feeds from event listings
// ENUM(news,event)
type FeedType string
