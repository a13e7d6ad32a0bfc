package search

import "github.com/axelwave/dealerscout/core"

// Monitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps during search.
type Monitor interface {
	Start(profile *core.TargetProfile, limit int)
	AfterIndex(added, skipped int)
	AfterProfileEmbedding(dimensions int)
	Finish(matches []core.Match)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.TargetProfile, _ int) {}
func (n *noopMonitor) AfterIndex(_, _ int)                {}
func (n *noopMonitor) AfterProfileEmbedding(_ int)        {}
func (n *noopMonitor) Finish(_ []core.Match)              {}
