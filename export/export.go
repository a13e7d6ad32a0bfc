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


// Package export serializes ranked shortlists for downstream consumption.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/axelwave/dealerscout/core"
)

// Format selects an output serialization.
type Format string

const (
	// FormatJSON emits an indented JSON array ordered by rank.
	FormatJSON Format = "json"
	// FormatCSV emits a CSV table with a header row, ordered by rank.
	FormatCSV Format = "csv"
)

// ErrUnknownFormat is returned for formats other than json and csv.
var ErrUnknownFormat = fmt.Errorf("unknown export format")

// ParseFormat maps a wire name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatCSV:
		return Format(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Entry is one exported shortlist row.
type Entry struct {
	Rank            int                `json:"rank"`
	Name            string             `json:"name"`
	Category        string             `json:"category"`
	Size            string             `json:"size,omitempty"`
	Region          string             `json:"region,omitempty"`
	Composite       float64            `json:"composite"`
	Criteria        map[string]float64 `json:"criteria"`
	Rationale       string             `json:"rationale,omitempty"`
	RationaleFailed bool               `json:"rationaleFailed,omitempty"`
}

// Entries flattens a result into exportable rows, preserving rank order.
func Entries(result *core.DiscoveryResult) []Entry {
	rows := make([]Entry, len(result.Entries))
	for i, entry := range result.Entries {
		row := Entry{
			Rank:            entry.Rank,
			Name:            entry.Record.Name,
			Category:        entry.Record.Category.String(),
			Region:          entry.Record.Region,
			Composite:       entry.Score.Composite,
			Criteria:        entry.Score.Criteria,
			Rationale:       entry.Rationale.Text,
			RationaleFailed: entry.Rationale.Failed,
		}
		if entry.Record.Size != 0 {
			row.Size = entry.Record.Size.String()
		}
		rows[i] = row
	}
	return rows
}

// Write serializes the result to w in the given format.
func Write(w io.Writer, result *core.DiscoveryResult, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		return writeCSV(w, result)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, result *core.DiscoveryResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Entries(result))
}

func writeCSV(w io.Writer, result *core.DiscoveryResult) error {
	writer := csv.NewWriter(w)

	header := []string{"rank", "name", "category", "size", "region", "composite", "rationale"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range Entries(result) {
		rationale := row.Rationale
		if row.RationaleFailed {
			rationale = "(generation failed)"
		}
		record := []string{
			strconv.Itoa(row.Rank),
			row.Name,
			row.Category,
			row.Size,
			row.Region,
			strconv.FormatFloat(row.Composite, 'f', 3, 64),
			rationale,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
