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


// Package kb holds the static company knowledge base a discovery run
// retrieves candidates from. The corpus is closed and loaded up front;
// records are immutable once loaded.
package kb

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/axelwave/dealerscout/core"
)

// KnowledgeBase is an immutable in-memory collection of company records,
// unique by content-hash ID.
type KnowledgeBase struct {
	records []*core.CompanyRecord
	byID    map[core.ID]*core.CompanyRecord
}

// LoadStats reports what happened while building a knowledge base.
type LoadStats struct {
	Loaded     int
	Rejected   int // Records failing domain validation
	Duplicates int // Records sharing a name with an earlier record
}

// New builds a knowledge base from the given records. Records failing domain
// validation and duplicate names are dropped and counted, not fatal. IDs are
// derived from the company name when unset.
func New(records []*core.CompanyRecord, logger *slog.Logger) (*KnowledgeBase, LoadStats) {
	if logger == nil {
		logger = slog.Default()
	}

	knowledgeBase := &KnowledgeBase{
		byID: make(map[core.ID]*core.CompanyRecord, len(records)),
	}
	var stats LoadStats

	for _, record := range records {
		if err := core.ValidateCompanyRecord(record); err != nil {
			logger.Warn("rejecting knowledge base record", "err", err)
			stats.Rejected++
			continue
		}

		if record.Id == 0 {
			record.Id = core.IDFromContent(record.Name)
		}
		if record.Size == 0 {
			record.Size = estimateSize(record.Name, record.Description)
		}

		if _, exists := knowledgeBase.byID[record.Id]; exists {
			logger.Warn("dropping duplicate knowledge base record", "record", record.Name)
			stats.Duplicates++
			continue
		}

		knowledgeBase.byID[record.Id] = record
		knowledgeBase.records = append(knowledgeBase.records, record)
		stats.Loaded++
	}

	return knowledgeBase, stats
}

// recordJSON is the wire form of a company record in a corpus file.
type recordJSON struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Size        string   `json:"size,omitempty"`
	Region      string   `json:"region,omitempty"`
	Industries  []string `json:"industries,omitempty"`
}

// Load reads a JSON array of company records and builds a knowledge base.
// Individual invalid records are rejected and counted; a malformed document
// is an error.
func Load(r io.Reader, logger *slog.Logger) (*KnowledgeBase, LoadStats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var raw []recordJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, LoadStats{}, fmt.Errorf("decoding corpus: %w", err)
	}

	records := make([]*core.CompanyRecord, 0, len(raw))
	var rejected int
	for _, entry := range raw {
		category, err := core.ParseCategory(entry.Category)
		if err != nil {
			logger.Warn("rejecting corpus record", "record", entry.Name, "err", err)
			rejected++
			continue
		}

		var size core.CompanySize
		if entry.Size != "" {
			size, err = core.ParseCompanySize(entry.Size)
			if err != nil {
				logger.Warn("rejecting corpus record", "record", entry.Name, "err", err)
				rejected++
				continue
			}
		}

		records = append(records, &core.CompanyRecord{
			Name:        entry.Name,
			Category:    category,
			Description: entry.Description,
			Size:        size,
			Region:      entry.Region,
			Industries:  entry.Industries,
		})
	}

	knowledgeBase, stats := New(records, logger)
	stats.Rejected += rejected
	return knowledgeBase, stats, nil
}

// Dump writes the knowledge base to w in the corpus wire format, so a seed
// corpus can be exported, edited and reloaded.
func Dump(w io.Writer, kb *KnowledgeBase) error {
	raw := make([]recordJSON, len(kb.records))
	for i, record := range kb.records {
		raw[i] = recordJSON{
			Name:        record.Name,
			Category:    record.Category.String(),
			Description: record.Description,
			Region:      record.Region,
			Industries:  record.Industries,
		}
		if record.Size != 0 {
			raw[i].Size = record.Size.String()
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(raw)
}

// Records returns the loaded records. The returned slice is a copy; the
// records themselves are shared and must not be mutated.
func (kb *KnowledgeBase) Records() []*core.CompanyRecord {
	out := make([]*core.CompanyRecord, len(kb.records))
	copy(out, kb.records)
	return out
}

// Len returns the number of loaded records.
func (kb *KnowledgeBase) Len() int {
	return len(kb.records)
}

// Lookup returns the record with the given ID, if present.
func (kb *KnowledgeBase) Lookup(id core.ID) (*core.CompanyRecord, bool) {
	record, ok := kb.byID[id]
	return record, ok
}

// ByCategory returns the records matching the given category, in load order.
func (kb *KnowledgeBase) ByCategory(category core.Category) []*core.CompanyRecord {
	var out []*core.CompanyRecord
	for _, record := range kb.records {
		if record.Category == category {
			out = append(out, record)
		}
	}
	return out
}
