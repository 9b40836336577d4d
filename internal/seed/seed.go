// Package seed loads reference data (feeds, podcasts, stations) from YAML.
package seed

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	feedDomain "github.com/reshetovitsme/mobile-portal/internal/modules/feed/domain"
	featureDomain "github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/domain"
	placeDomain "github.com/reshetovitsme/mobile-portal/internal/modules/place/domain"
	placeService "github.com/reshetovitsme/mobile-portal/internal/modules/place/service"
	podcastDomain "github.com/reshetovitsme/mobile-portal/internal/modules/podcast/domain"
)

type File struct {
	Feeds             []Feed     `yaml:"feeds"`
	PodcastCategories []Category `yaml:"podcast_categories"`
	Stations          []Station  `yaml:"stations"`
	Features          []Feature  `yaml:"features"`
}

type Feed struct {
	Slug   string `yaml:"slug"`
	Title  string `yaml:"title"`
	Unit   string `yaml:"unit"`
	RSSURL string `yaml:"rss_url"`
	Type   string `yaml:"type"`
}

type Category struct {
	Code     string    `yaml:"code"`
	Name     string    `yaml:"name"`
	Ordering int       `yaml:"ordering"`
	Podcasts []Podcast `yaml:"podcasts"`
}

type Podcast struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	RSSURL      string `yaml:"rss_url"`
	Medium      string `yaml:"medium"`
}

type Station struct {
	Title string   `yaml:"title"`
	CRS   string   `yaml:"crs"`
	Lat   *float64 `yaml:"lat"`
	Lon   *float64 `yaml:"lon"`
}

type Feature struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	UserName    string `yaml:"user_name"`
	UserEmail   string `yaml:"user_email"`
	Public      bool   `yaml:"public"`
}

type FeedStore interface {
	SaveFeed(ctx context.Context, feed *feedDomain.Feed) error
}

type PodcastStore interface {
	SaveCategory(ctx context.Context, category *podcastDomain.Category) error
	SavePodcast(ctx context.Context, podcast *podcastDomain.Podcast) error
}

type PlaceStore interface {
	SaveEntity(ctx context.Context, entity *placeDomain.Entity) error
}

type FeatureStore interface {
	Create(ctx context.Context, feature *featureDomain.Feature) error
	ListPublic(ctx context.Context) ([]*featureDomain.Feature, error)
}

// Loader writes a seed file through the module stores
type Loader struct {
	Feeds    FeedStore
	Podcasts PodcastStore
	Places   PlaceStore
	Features FeatureStore
	Logger   *slog.Logger
}

// Parse reads a seed file
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.With("path", path, "context", "failed to read seed file").Wrap(err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oops.With("path", path, "context", "failed to parse seed file").Wrap(err)
	}
	return &f, nil
}

// Load applies the seed. Feeds, podcasts and stations are upserted, so
// loading the same file twice is harmless. Features are only added while
// none are public.
func (l *Loader) Load(ctx context.Context, f *File) error {
	for _, s := range f.Feeds {
		feedType, err := feedDomain.ParseFeedType(s.Type)
		if err != nil {
			return oops.With("slug", s.Slug).Wrap(err)
		}
		err = l.Feeds.SaveFeed(ctx, &feedDomain.Feed{
			Slug:   s.Slug,
			Title:  s.Title,
			Unit:   s.Unit,
			RSSURL: s.RSSURL,
			Type:   feedType,
		})
		if err != nil {
			return err
		}
	}

	for _, c := range f.PodcastCategories {
		category := &podcastDomain.Category{Code: c.Code, Name: c.Name, Ordering: c.Ordering}
		if err := l.Podcasts.SaveCategory(ctx, category); err != nil {
			return err
		}

		for _, p := range c.Podcasts {
			medium := podcastDomain.MediumAudio
			if p.Medium != "" {
				parsed, err := podcastDomain.ParseMedium(p.Medium)
				if err != nil {
					return oops.With("rss_url", p.RSSURL).Wrap(err)
				}
				medium = parsed
			}
			err := l.Podcasts.SavePodcast(ctx, &podcastDomain.Podcast{
				CategoryID:  category.ID,
				Title:       p.Title,
				Description: p.Description,
				RSSURL:      p.RSSURL,
				Medium:      medium,
			})
			if err != nil {
				return err
			}
		}
	}

	for _, s := range f.Stations {
		err := l.Places.SaveEntity(ctx, &placeDomain.Entity{
			Title:       s.Title,
			Type:        placeService.StationType,
			Lat:         s.Lat,
			Lon:         s.Lon,
			Identifiers: map[string]string{placeDomain.IdentifierCRS: strings.ToUpper(s.CRS)},
		})
		if err != nil {
			return err
		}
	}

	if err := l.loadFeatures(ctx, f.Features); err != nil {
		return err
	}

	l.Logger.Info("Seed loaded",
		"feeds", len(f.Feeds),
		"podcast_categories", len(f.PodcastCategories),
		"stations", len(f.Stations),
		"features", len(f.Features),
	)
	return nil
}

func (l *Loader) loadFeatures(ctx context.Context, features []Feature) error {
	if len(features) == 0 {
		return nil
	}

	existing, err := l.Features.ListPublic(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, s := range features {
		err := l.Features.Create(ctx, &featureDomain.Feature{
			Title:       s.Title,
			Description: s.Description,
			UserName:    s.UserName,
			UserEmail:   s.UserEmail,
			IsPublic:    s.Public,
			Created:     time.Now(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
