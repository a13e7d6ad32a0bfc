// Copyright 2025 Axelwave Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package index provides the embedding index over the company knowledge base.
//
// Embeddings are computed once per record per process lifetime and cached by
// record ID. Similarity retrieval is backed by chromem-go, an in-process
// vector database with cosine similarity search.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"golang.org/x/sync/singleflight"

	"github.com/axelwave/dealerscout/ai"
	"github.com/axelwave/dealerscout/core"
)

const collectionName = "companies"

// Index embeds company records and serves similarity lookups against them.
//
// The embedding cache is read-mostly and written once per record. Concurrent
// requests for the same uncached record perform exactly one embedding
// computation; all callers receive its result.
type Index struct {
	embedder   ai.Embedder
	db         *chromem.DB
	collection *chromem.Collection
	logger     *slog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	cache   map[core.ID][]float32
	records map[core.ID]*core.CompanyRecord
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// New creates an empty in-memory index backed by the given embedder.
func New(embedder ai.Embedder, opts ...Option) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	db := chromem.NewDB()

	ix := &Index{
		embedder: embedder,
		db:       db,
		logger:   slog.Default().With("component", "index"),
		cache:    make(map[core.ID][]float32),
		records:  make(map[core.ID]*core.CompanyRecord),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	// The embedding func only runs for documents added without an explicit
	// vector; the index always supplies one, so this is a safety net.
	collection, err := db.CreateCollection(collectionName, nil, ix.embeddingFunc())
	if err != nil {
		return nil, fmt.Errorf("creating collection: %w", err)
	}
	ix.collection = collection

	return ix, nil
}

func (ix *Index) embeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return ix.embedder.EmbedText(ctx, text)
	}
}

// EmbeddingText builds the text embedded for a record: the name plus the
// free-text description and structured attributes that carry signal.
func EmbeddingText(record *core.CompanyRecord) string {
	parts := []string{record.Name + ". " + record.Description}
	if record.Region != "" {
		parts = append(parts, "Region: "+record.Region)
	}
	if len(record.Industries) > 0 {
		parts = append(parts, "Industries: "+strings.Join(record.Industries, ", "))
	}
	return strings.Join(parts, " ")
}

// Embedding returns the embedding vector for a record, computing and caching
// it on first request. Repeated requests return the identical cached vector
// without recomputation.
func (ix *Index) Embedding(ctx context.Context, record *core.CompanyRecord) ([]float32, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}

	ix.mu.RLock()
	vector, ok := ix.cache[record.Id]
	ix.mu.RUnlock()
	if ok {
		return vector, nil
	}

	key := strconv.FormatUint(uint64(record.Id), 10)
	result, err, _ := ix.group.Do(key, func() (interface{}, error) {
		// Another caller may have completed between the cache miss and here.
		ix.mu.RLock()
		cached, ok := ix.cache[record.Id]
		ix.mu.RUnlock()
		if ok {
			return cached, nil
		}

		raw, err := ix.embedder.EmbedText(ctx, EmbeddingText(record))
		if err != nil {
			return nil, fmt.Errorf("%w: record %q: %w", ErrEmbeddingFailed, record.Name, err)
		}
		if len(raw) == 0 {
			return nil, fmt.Errorf("%w: record %q: empty vector", ErrEmbeddingFailed, record.Name)
		}

		vector := Normalize(raw)

		err = ix.collection.AddDocument(ctx, chromem.Document{
			ID:        key,
			Content:   EmbeddingText(record),
			Embedding: vector,
			Metadata: map[string]string{
				"category": record.Category.String(),
				"name":     record.Name,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("adding document for record %q: %w", record.Name, err)
		}

		ix.mu.Lock()
		ix.cache[record.Id] = vector
		ix.records[record.Id] = record
		ix.mu.Unlock()

		return vector, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]float32), nil
}

// Add embeds and indexes a batch of records. A record whose embedding fails
// is logged and excluded from retrieval for the current run; the failure is
// not fatal to the pipeline. Returns the number of records indexed and the
// number skipped.
func (ix *Index) Add(ctx context.Context, records []*core.CompanyRecord) (added, skipped int) {
	for _, record := range records {
		if _, err := ix.Embedding(ctx, record); err != nil {
			ix.logger.Warn("excluding record from retrieval", "record", record.Name, "err", err)
			skipped++
			continue
		}
		added++
	}
	return added, skipped
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.records)
}

// Query returns up to limit records of the given category ranked descending
// by cosine similarity to the query vector. Ties are broken by record ID so
// identical inputs always produce identical orderings.
func (ix *Index) Query(ctx context.Context, queryVector []float32, limit int, category core.Category) ([]core.Match, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", ErrEmbeddingFailed)
	}

	// Cap limit at collection size (chromem requires nResults <= doc count)
	docCount := ix.collection.Count()
	if docCount == 0 {
		return []core.Match{}, nil
	}
	if limit > docCount {
		limit = docCount
	}

	where := map[string]string{"category": category.String()}
	results, err := ix.collection.QueryEmbedding(ctx, queryVector, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}

	matches := make([]core.Match, 0, len(results))
	for _, r := range results {
		id, err := strconv.ParseUint(r.ID, 10, 64)
		if err != nil {
			ix.logger.Warn("skipping result with malformed id", "id", r.ID)
			continue
		}

		ix.mu.RLock()
		record, ok := ix.records[core.ID(id)]
		ix.mu.RUnlock()
		if !ok {
			continue
		}

		matches = append(matches, core.Match{
			Record:     record,
			Similarity: r.Similarity,
		})
	}

	// Re-sort with the ID tie-break; chromem orders by similarity alone.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Record.Id < matches[j].Record.Id
	})

	return matches, nil
}
