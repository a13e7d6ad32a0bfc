package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/axelwave/dealerscout/ai"
	"github.com/axelwave/dealerscout/core"
	"github.com/axelwave/dealerscout/index"
)

// Searcher retrieves a candidate superset from the knowledge base, ranked by
// embedding similarity against the target profile.
type Searcher struct {
	index    *index.Index
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the given embedding index.
func NewSearcher(ix *index.Index, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		index:    ix,
		embedder: embedder,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ProfileText builds the retrieval query text for a target profile.
func ProfileText(profile *core.TargetProfile) string {
	text := profile.Description
	if len(profile.Keywords) > 0 {
		text += " Keywords: " + strings.Join(profile.Keywords, ", ")
	}
	return text
}

// Search retrieves up to limit candidates from the pool, filtered to the
// category matching the profile's discovery mode and ranked descending by
// cosine similarity to the profile embedding. Ties are broken by record ID,
// so identical inputs produce identical output. Returns fewer than limit
// entries when the filtered pool is smaller; entries are never fabricated.
func (s *Searcher) Search(ctx context.Context, profile *core.TargetProfile, pool []*core.CompanyRecord, limit int) ([]core.Match, error) {
	return s.SearchWithMonitor(ctx, profile, pool, limit, nil)
}

// SearchWithMonitor is Search with observation hooks for each retrieval step.
func (s *Searcher) SearchWithMonitor(ctx context.Context, profile *core.TargetProfile, pool []*core.CompanyRecord, limit int, monitor Monitor) ([]core.Match, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateTargetProfile(profile); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	monitor.Start(profile, limit)

	// Index the pool. Embeddings are cached per record, so repeated searches
	// over the same pool only embed new records.
	added, skipped := s.index.Add(ctx, pool)
	if skipped > 0 {
		s.logger.Warn("records excluded from retrieval", "skipped", skipped)
	}
	monitor.AfterIndex(added, skipped)

	// Embed the profile query
	queryVector, err := s.embedder.EmbedText(ctx, ProfileText(profile))
	if err != nil {
		s.logger.Error("error generating embedding for profile", "mode", profile.Mode, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrProfileEmbedding, err)
	}
	monitor.AfterProfileEmbedding(len(queryVector))

	matches, err := s.index.Query(ctx, queryVector, limit, profile.Mode.TargetCategory())
	if err != nil {
		s.logger.Error("error querying index", "err", err)
		return nil, err
	}

	monitor.Finish(matches)
	return matches, nil
}
