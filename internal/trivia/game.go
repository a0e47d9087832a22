package trivia

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/showboard/showboard/internal/tmdb"
	"github.com/showboard/showboard/pkg/logging"
	"github.com/showboard/showboard/pkg/telemetry"
)

const (
	// gameSize is how many movies a round is dealt.
	gameSize = 20
	// collectTarget is where collection stops early.
	collectTarget = 50
	// maxPages bounds the discovery pagination.
	maxPages = 10
)

// Input validation errors; all map to 400 at the API layer.
var (
	ErrUnknownGenre     = errors.New("unknown genre")
	ErrNoProviders      = errors.New("at least one provider is required")
	ErrUnknownProvider  = errors.New("unknown provider")
	ErrInsufficientData = errors.New("not enough movies with taglines for this selection")
)

// IsInputError reports whether err belongs to the input/insufficient
// data class of game errors.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnknownGenre) ||
		errors.Is(err, ErrNoProviders) ||
		errors.Is(err, ErrUnknownProvider) ||
		errors.Is(err, ErrInsufficientData)
}

// MovieSource is the slice of the catalog API the game needs.
type MovieSource interface {
	DiscoverMovies(ctx context.Context, genreID int, providerIDs []int, page int) ([]tmdb.Movie, error)
	GetMovie(ctx context.Context, id int64) (*tmdb.Movie, error)
}

// Service assembles tagline guessing game rounds from the movie catalog
type Service struct {
	source MovieSource
	logger *zap.Logger
}

// NewService creates a new game service
func NewService(source MovieSource) *Service {
	return &Service{
		source: source,
		logger: logging.GetLogger().With(zap.String("component", "trivia-game")),
	}
}

// StartGame resolves the genre and provider keywords, collects movies
// that carry a tagline and returns a random hand of 20.
//
// Collection walks the discovery pages in order, confirming each
// candidate's tagline with a detail fetch. It stops once 50 qualifying
// movies are in hand, after 10 pages, or as soon as a page comes back
// empty or failing; page and detail failures are never surfaced, a
// failed detail fetch just skips that movie.
func (s *Service) StartGame(ctx context.Context, genre string, providers []string) ([]tmdb.Movie, error) {
	ctx, span := telemetry.StartSpan(ctx, "trivia.start_game")
	defer span.End()

	genreID, ok := Genres[strings.ToLower(strings.TrimSpace(genre))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenre, genre)
	}

	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	providerIDs := make([]int, 0, len(providers))
	for _, p := range providers {
		id, ok := Providers[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, p)
		}
		providerIDs = append(providerIDs, id)
	}

	collected := s.collect(ctx, genreID, providerIDs)
	if len(collected) < gameSize {
		s.logger.Info("Insufficient qualifying movies",
			zap.String("genre", genre),
			zap.Int("collected", len(collected)),
		)
		return nil, ErrInsufficientData
	}

	rand.Shuffle(len(collected), func(i, j int) {
		collected[i], collected[j] = collected[j], collected[i]
	})

	return collected[:gameSize], nil
}

func (s *Service) collect(ctx context.Context, genreID int, providerIDs []int) []tmdb.Movie {
	var collected []tmdb.Movie

	for page := 1; page <= maxPages; page++ {
		results, err := s.source.DiscoverMovies(ctx, genreID, providerIDs, page)
		if err != nil {
			// Rate limit, auth failure, network blip: all end the
			// walk the same quiet way.
			s.logger.Debug("Discovery page failed, stopping", zap.Int("page", page), zap.Error(err))
			break
		}
		if len(results) == 0 {
			break
		}

		for _, candidate := range results {
			detail, err := s.source.GetMovie(ctx, candidate.ID)
			if err != nil {
				s.logger.Debug("Detail fetch failed, skipping",
					zap.Int64("movie_id", candidate.ID),
					zap.Error(err),
				)
				continue
			}
			if strings.TrimSpace(detail.Tagline) == "" {
				continue
			}

			collected = append(collected, *detail)
			if len(collected) >= collectTarget {
				return collected
			}
		}
	}

	return collected
}
