package tmdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/showboard/showboard/pkg/config"
	"github.com/showboard/showboard/pkg/logging"
	"github.com/showboard/showboard/pkg/telemetry"
)

// Movie is a movie as returned by the catalog. Discovery results carry
// no tagline; only the per-movie detail endpoint fills it in.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Tagline     string  `json:"tagline"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

type discoverResponse struct {
	Page       int     `json:"page"`
	Results    []Movie `json:"results"`
	TotalPages int     `json:"total_pages"`
}

// Client wraps the TMDB REST API
type Client struct {
	http        *resty.Client
	watchRegion string
	logger      *zap.Logger
}

// New creates a new TMDB client
func New(cfg *config.TMDBConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("tmdb api key is required (key file or SHOW_TMDB_API_KEY)")
	}

	logger := logging.GetLogger().With(zap.String("component", "tmdb-client"))

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(15 * time.Second).
		SetQueryParam("api_key", cfg.APIKey)

	logger.Info("TMDB client initialized", zap.String("url", cfg.BaseURL))

	return &Client{
		http:        httpClient,
		watchRegion: cfg.WatchRegion,
		logger:      logger,
	}, nil
}

// DiscoverMovies fetches one 1-indexed page of the discovery listing:
// movies in the genre available on any of the given providers in the
// configured watch region, at least 100 votes, most popular first.
func (c *Client) DiscoverMovies(ctx context.Context, genreID int, providerIDs []int, page int) ([]Movie, error) {
	ctx, span := telemetry.StartSpan(ctx, "tmdb.discover_movies")
	defer span.End()

	providers := make([]string, 0, len(providerIDs))
	for _, id := range providerIDs {
		providers = append(providers, strconv.Itoa(id))
	}

	var result discoverResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"with_genres":          strconv.Itoa(genreID),
			"with_watch_providers": strings.Join(providers, "|"),
			"watch_region":         c.watchRegion,
			"sort_by":              "popularity.desc",
			"vote_count.gte":       "100",
			"page":                 strconv.Itoa(page),
		}).
		SetResult(&result).
		Get("/discover/movie")
	if err != nil {
		return nil, fmt.Errorf("discover request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("discover returned status %d", resp.StatusCode())
	}

	return result.Results, nil
}

// GetMovie fetches one movie's details, tagline included
func (c *Client) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	ctx, span := telemetry.StartSpan(ctx, "tmdb.get_movie")
	defer span.End()

	var movie Movie
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&movie).
		Get(fmt.Sprintf("/movie/%d", id))
	if err != nil {
		return nil, fmt.Errorf("movie detail request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("movie detail returned status %d", resp.StatusCode())
	}

	return &movie, nil
}
