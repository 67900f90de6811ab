package models

import "time"

type SeriesStatus string

const (
	StatusPending   SeriesStatus = "pending"
	StatusDraft     SeriesStatus = "draft"
	StatusPublished SeriesStatus = "published"
	StatusArchived  SeriesStatus = "archived"
)

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

type SeriesSummary struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	PosterURL   string       `json:"posterUrl"`
	CategoryID  string       `json:"categoryId,omitempty"`
	ViewCount   int          `json:"viewCount"`
	RatingAvg   float64      `json:"ratingAvg"`
	SeasonCount int          `json:"seasonCount"`
	Status      SeriesStatus `json:"status"`
}

type EpisodeSummary struct {
	ID              string       `json:"id"`
	SeriesID        string       `json:"seriesId"`
	Order           int          `json:"order"`
	Title           string       `json:"title"`
	ThumbnailURL    string       `json:"thumbnailUrl"`
	DurationSeconds int          `json:"durationSeconds"`
	CreatedAt       time.Time    `json:"createdAt"`
	Status          SeriesStatus `json:"status"`
}

// CatalogSeed is the on-disk format for the catalog bootstrap file.
type CatalogSeed struct {
	Categories []*Category       `json:"categories"`
	Series     []*SeriesSummary  `json:"series"`
	Episodes   []*EpisodeSummary `json:"episodes"`
}
