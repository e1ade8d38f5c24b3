package batch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/netzero/internal/logging"
	"github.com/rshade/netzero/internal/solar"
)

// Scenario is one input row.
type Scenario struct {
	// Row is the 1-based worksheet row the scenario came from.
	Row   int               `json:"row"`
	Name  string            `json:"name"`
	Input solar.OffsetInput `json:"input"`

	// ParseErr is set when the row could not be read; the scenario is then
	// reported without being calculated.
	ParseErr error `json:"-"`
}

// Outcome is the evaluation of one scenario. Exactly one of Result and Err is set.
type Outcome struct {
	Scenario Scenario
	Result   *solar.OffsetResult
	Err      error
}

// Options tune Evaluate.
type Options struct {
	// ChunkSize defaults to DefaultChunkSize.
	ChunkSize int
	// Concurrency defaults to DefaultConcurrency.
	Concurrency int
	// GridFactor replaces a blank grid_factor cell. Zero selects the default factor.
	GridFactor float64
	// OnProgress is called after every chunk.
	OnProgress ProgressCallback
}

// Summary counts outcomes.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	NetZero   int `json:"net_zero"`
}

// Evaluate calculates every scenario. Per-row failures are recorded in the
// matching Outcome; only an invalid option or a cancelled context returns an
// error. Outcomes are in input order.
func Evaluate(ctx context.Context, scenarios []Scenario, opts Options) ([]Outcome, error) {
	concurrency := opts.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}
	var err error
	p := NewProcessorWithDefaults[Scenario]()
	if opts.ChunkSize != 0 {
		if p, err = NewProcessor[Scenario](opts.ChunkSize); err != nil {
			return nil, err
		}
	}
	p.WithProgressCallback(opts.OnProgress)

	log := logging.ComponentLogger(*logging.FromContext(ctx), "batch")
	outcomes := make([]Outcome, len(scenarios))

	err = p.Process(ctx, scenarios, func(_ context.Context, chunk []Scenario, offset int) error {
		for i, sc := range chunk {
			outcomes[offset+i] = evaluateOne(sc, opts.GridFactor, log)
		}
		return nil
	}, concurrency)
	if err != nil {
		return nil, fmt.Errorf("evaluating scenarios: %w", err)
	}
	return outcomes, nil
}

func evaluateOne(sc Scenario, gridFactor float64, log zerolog.Logger) Outcome {
	out := Outcome{Scenario: sc}
	if sc.ParseErr != nil {
		out.Err = sc.ParseErr
		return out
	}
	in := sc.Input
	if in.GridEmissionFactor == 0 {
		in.GridEmissionFactor = gridFactor
	}
	res, err := solar.ComputeOffset(in)
	if err != nil {
		log.Debug().Int("row", sc.Row).Str("scenario", sc.Name).Err(err).Msg("scenario failed")
		out.Err = err
		return out
	}
	out.Result = &res
	return out
}

// Summarize counts successes, failures and net-zero results.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			s.Failed++
		case o.Result != nil:
			s.Succeeded++
			if o.Result.NetZeroReached {
				s.NetZero++
			}
		}
	}
	return s
}

// ErrorMessage returns the user-facing message of a failed outcome.
func (o Outcome) ErrorMessage() string {
	return solar.UserMessage(o.Err)
}
