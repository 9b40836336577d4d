package domain

import (
	"strconv"
	"time"
)

// Feed is a syndicated source of news items or events
type Feed struct {
	ID           int64     `db:"id" json:"id"`
	Slug         string    `db:"slug" json:"slug"`
	Title        string    `db:"title" json:"title"`
	Unit         string    `db:"unit" json:"unit,omitempty"`
	RSSURL       string    `db:"rss_url" json:"rss_url"`
	Type         FeedType  `db:"feed_type" json:"feed_type"`
	LastModified time.Time `db:"last_modified" json:"last_modified"`
}

// Item is a single entry of a feed, optionally time-bounded and geolocated
type Item struct {
	ID           int64      `db:"id" json:"id"`
	FeedID       int64      `db:"feed_id" json:"feed_id"`
	GUID         string     `db:"guid" json:"guid"`
	Title        string     `db:"title" json:"title"`
	Description  string     `db:"description" json:"description"`
	Link         string     `db:"link" json:"link,omitempty"`
	LastModified time.Time  `db:"last_modified" json:"last_modified"`
	DTStart      *time.Time `db:"dt_start" json:"dt_start,omitempty"`
	DTEnd        *time.Time `db:"dt_end" json:"dt_end,omitempty"`
	LocationName string     `db:"location_name" json:"location_name,omitempty"`
	LocationLat  *float64   `db:"location_lat" json:"location_lat,omitempty"`
	LocationLon  *float64   `db:"location_lon" json:"location_lon,omitempty"`
}

// Prefix is the URL prefix of the app listing feeds of this type.
func (t FeedType) Prefix() string {
	if t == FeedTypeEvent {
		return "/events/"
	}
	return "/news/"
}

// URL is the page listing the feed's items.
func (f Feed) URL() string {
	return f.Type.Prefix() + f.Slug + "/"
}

// ItemURL is the page of one of the feed's items.
func (f Feed) ItemURL(item *Item) string {
	return f.URL() + strconv.FormatInt(item.ID, 10) + "/"
}
