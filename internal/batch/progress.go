package batch

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress tracks items and chunks processed. It is safe for concurrent use.
type Progress struct {
	mu sync.Mutex

	totalItems      int
	processedItems  int
	totalChunks     int
	processedChunks int
	chunkSize       int
	startTime       time.Time
}

// NewProgress creates a progress tracker starting now.
func NewProgress(totalItems, totalChunks, chunkSize int) *Progress {
	return &Progress{
		totalItems:  totalItems,
		totalChunks: totalChunks,
		chunkSize:   chunkSize,
		startTime:   time.Now(),
	}
}

// AddProcessed records one finished chunk of n items.
func (p *Progress) AddProcessed(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processedItems += n
	p.processedChunks++
}

// Snapshot returns a copy of the current state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := ProgressSnapshot{
		TotalItems:      p.totalItems,
		ProcessedItems:  p.processedItems,
		TotalChunks:     p.totalChunks,
		ProcessedChunks: p.processedChunks,
		ChunkSize:       p.chunkSize,
		Elapsed:         time.Since(p.startTime),
	}
	if p.totalItems > 0 {
		s.PercentComplete = float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
	}
	if secs := s.Elapsed.Seconds(); secs > 0 {
		s.ItemsPerSecond = float64(p.processedItems) / secs
	}
	return s
}

// ProgressSnapshot is an immutable view of Progress.
type ProgressSnapshot struct {
	TotalItems      int
	ProcessedItems  int
	TotalChunks     int
	ProcessedChunks int
	ChunkSize       int
	PercentComplete float64
	Elapsed         time.Duration
	ItemsPerSecond  float64
}

// IsComplete reports whether every item has been processed.
func (s ProgressSnapshot) IsComplete() bool {
	return s.ProcessedItems >= s.TotalItems
}
