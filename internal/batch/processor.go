package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Chunking defaults.
const (
	// DefaultChunkSize is the number of scenarios per chunk.
	DefaultChunkSize = 100

	// MinChunkSize is the minimum allowed chunk size.
	MinChunkSize = 1

	// MaxChunkSize is the maximum allowed chunk size.
	MaxChunkSize = 1000

	// DefaultConcurrency is the number of chunks evaluated at once.
	DefaultConcurrency = 4
)

// Processor errors.
var (
	ErrInvalidChunkSize = errors.New("chunk size must be between 1 and 1000")
	ErrNilCallback      = errors.New("chunk callback cannot be nil")
)

// ChunkCallback handles one chunk. offset is the index of chunk[0] in the
// full item slice.
type ChunkCallback[T any] func(ctx context.Context, chunk []T, offset int) error

// ProgressCallback is invoked after each chunk completes.
type ProgressCallback func(p ProgressSnapshot)

// Processor splits items into fixed-size chunks and runs a callback on each.
type Processor[T any] struct {
	chunkSize  int
	onProgress ProgressCallback
}

// NewProcessor creates a processor with the given chunk size.
func NewProcessor[T any](chunkSize int) (*Processor[T], error) {
	if chunkSize < MinChunkSize || chunkSize > MaxChunkSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, chunkSize)
	}
	return &Processor[T]{chunkSize: chunkSize}, nil
}

// NewProcessorWithDefaults creates a processor with DefaultChunkSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{chunkSize: DefaultChunkSize}
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// ChunkSize returns the configured chunk size.
func (p *Processor[T]) ChunkSize() int {
	return p.chunkSize
}

// Process runs callback on every chunk with at most maxConcurrency chunks in
// flight. It stops scheduling new chunks after the first callback error or
// context cancellation and returns that error. Empty input is a no-op.
func (p *Processor[T]) Process(
	ctx context.Context,
	items []T,
	callback ChunkCallback[T],
	maxConcurrency int,
) error {
	if callback == nil {
		return ErrNilCallback
	}
	if len(items) == 0 {
		return nil
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	bounds := p.Chunks(len(items))
	progress := NewProgress(len(items), len(bounds), p.chunkSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, b := range bounds {
		if gctx.Err() != nil {
			break
		}
		chunk := items[b[0]:b[1]]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := callback(gctx, chunk, b[0]); err != nil {
				return fmt.Errorf("chunk %d failed: %w", i, err)
			}
			progress.AddProcessed(len(chunk))
			if p.onProgress != nil {
				p.onProgress(progress.Snapshot())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Chunks returns the [start, end) boundaries of every chunk.
func (p *Processor[T]) Chunks(totalItems int) [][2]int {
	n := totalItems / p.chunkSize
	if totalItems%p.chunkSize > 0 {
		n++
	}
	bounds := make([][2]int, n)
	for i := range n {
		start := i * p.chunkSize
		bounds[i] = [2]int{start, min(start+p.chunkSize, totalItems)}
	}
	return bounds
}
