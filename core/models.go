package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated from content-based hashing of the company name.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Category classifies a company in the knowledge base.
type Category int

const (
	// CategoryDealership represents an automotive retailer or dealer group.
	CategoryDealership Category = iota + 1
	// CategoryTechnologyPartner represents a software or technology vendor.
	CategoryTechnologyPartner
)

// String returns the wire name for the category.
func (c Category) String() string {
	switch c {
	case CategoryDealership:
		return "dealership"
	case CategoryTechnologyPartner:
		return "technology_partner"
	default:
		return "unknown"
	}
}

// Mode selects what kind of companies a discovery run targets.
type Mode int

const (
	// ModeCustomers discovers prospective customers (dealerships).
	ModeCustomers Mode = iota + 1
	// ModePartners discovers prospective technology partners.
	ModePartners
)

// String returns the wire name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeCustomers:
		return "customers"
	case ModePartners:
		return "partners"
	default:
		return "unknown"
	}
}

// TargetCategory maps a discovery mode to the company category it retrieves.
func (m Mode) TargetCategory() Category {
	if m == ModePartners {
		return CategoryTechnologyPartner
	}
	return CategoryDealership
}

// CompanySize buckets a company by headcount/footprint.
type CompanySize int

const (
	// SizeSmall represents local or independent operations.
	SizeSmall CompanySize = iota + 1
	// SizeMedium represents regional, multi-location operations.
	SizeMedium
	// SizeLarge represents national or international groups.
	SizeLarge
)

// String returns the wire name for the size bucket.
func (s CompanySize) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return "unknown"
	}
}

// CompanyRecord is a single entity in the static knowledge base.
// Records are immutable once loaded.
type CompanyRecord struct {
	Id          ID
	Name        string
	Category    Category
	Description string
	Size        CompanySize
	Region      string
	Industries  []string // Industry tags (e.g. "automotive retail", "dms")
}

// TargetProfile is the query a discovery run matches candidates against.
// It is constructed per run and read-only afterwards.
type TargetProfile struct {
	Vendor      string
	Product     string
	Description string // Free-text product description, used for embedding
	Mode        Mode
	Regions     []string
	Keywords    []string // Industry keywords steering the keyword-overlap criterion
}

// Match pairs a candidate record with its embedding similarity to the profile.
type Match struct {
	Record     *CompanyRecord
	Similarity float32
}

// CandidateScore holds the composite score and the per-criterion sub-scores
// that produced it. Sub-scores are each bounded to [0,1]; the composite is a
// deterministic weighted combination. Recomputed every run, never persisted.
type CandidateScore struct {
	Composite float64
	Criteria  map[string]float64
}

// Rationale is generated justification text tied to one record for one run.
// Failed marks a candidate whose generation attempts were all exhausted.
type Rationale struct {
	Text     string
	Attempts int
	Failed   bool
}

// Candidate is a scored, annotated company flowing through the pipeline.
type Candidate struct {
	Record     *CompanyRecord
	Similarity float32
	Score      CandidateScore
	Rationale  Rationale
}

// RankedEntry is one row of the final shortlist.
type RankedEntry struct {
	Rank int // 1-based
	Candidate
}

// RejectionCounts reports how many candidates each validation step removed.
type RejectionCounts struct {
	Duplicates      int
	BelowThreshold  int
	RationaleFailed int
	Total           int
}

// StageDurations records wall-clock time spent in each pipeline stage.
type StageDurations struct {
	Search     time.Duration
	Analysis   time.Duration
	Validation time.Duration
}

// RunMetadata describes a single discovery run.
type RunMetadata struct {
	RunID        string
	Considered   int // Candidates retrieved by search across all rounds
	Rejected     RejectionCounts
	Shortfall    int // Deficit between K and the entries actually returned
	SearchRounds int
	Stages       StageDurations
}

// DiscoveryResult is the ordered shortlist produced by a run, rank 1..K,
// plus run metadata. Entries never share a record ID and may number fewer
// than K; the shortfall is reported rather than padded.
type DiscoveryResult struct {
	Entries []RankedEntry
	Meta    RunMetadata
}
