package domain

import (
	"fmt"
	"time"
)

// Category groups podcasts by subject
type Category struct {
	ID       int64  `db:"id" json:"id"`
	Code     string `db:"code" json:"code"`
	Name     string `db:"name" json:"name"`
	Ordering int    `db:"ordering" json:"ordering"`
}

// Podcast is a syndicated series of audio, video or document episodes
type Podcast struct {
	ID          int64      `db:"id" json:"id"`
	CategoryID  int64      `db:"category_id" json:"category_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	RSSURL      string     `db:"rss_url" json:"rss_url"`
	Medium      Medium     `db:"medium" json:"medium"`
	LastUpdated *time.Time `db:"last_updated" json:"last_updated,omitempty"`
}

// Item is a single episode
type Item struct {
	ID            int64      `db:"id" json:"id"`
	PodcastID     int64      `db:"podcast_id" json:"podcast_id"`
	GUID          string     `db:"guid" json:"guid"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	URL           string     `db:"url" json:"url"`
	PublishedDate *time.Time `db:"published_date" json:"published_date,omitempty"`
	Ordering      *int       `db:"ordering" json:"ordering,omitempty"`
	Duration      int        `db:"duration" json:"duration"`
}

// DurationText formats the duration as m:ss or h:mm:ss.
func (i Item) DurationText() string {
	h, m, s := i.Duration/3600, i.Duration/60%60, i.Duration%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
