package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/batch"
	"github.com/rshade/netzero/internal/cli/pagination"
	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/logging"
	"github.com/rshade/netzero/internal/solar"
	"github.com/rshade/netzero/internal/tui"
)

// batchRecord is the json/ndjson form of one batch outcome.
type batchRecord struct {
	Row    int                 `json:"row"`
	Name   string              `json:"name"`
	Status string              `json:"status"`
	Result *solar.OffsetResult `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// NewBatchCmd creates the batch command: evaluates every scenario row of an
// XLSX workbook. Failing rows are reported without stopping the batch.
func NewBatchCmd() *cobra.Command {
	var (
		in          string
		out         string
		output      string
		concurrency int
		chunkSize   int
		sortBy      string
		page        pagination.Params
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate offset scenarios from an XLSX workbook",
		Long: `Reads scenarios from the first sheet of a workbook. The first row is a header
with the columns name, panels, energy, energy_unit, emissions, emissions_unit
and grid_factor; panels, energy and emissions are required. Blank units mean
kWh and kg, a blank grid factor means the configured one.`,
		Example: `  netzero batch --in scenarios.xlsx
  netzero batch --in scenarios.xlsx --out results.xlsx --concurrency 8
  netzero batch --in scenarios.xlsx --output ndjson
  netzero batch --in scenarios.xlsx --sort panels:desc --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(output)
			if err != nil {
				return err
			}
			if in == "" {
				return errors.New("--in is required")
			}
			view, err := newBatchView(sortBy, page)
			if err != nil {
				return err
			}
			return runBatch(cmd, in, out, format, view, batch.Options{Concurrency: concurrency, ChunkSize: chunkSize})
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "scenario workbook (.xlsx)")
	cmd.Flags().StringVar(&out, "out", "", "write results to this workbook (.xlsx)")
	cmd.Flags().IntVar(&concurrency, "concurrency", batch.DefaultConcurrency, "chunks evaluated at once")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", batch.DefaultChunkSize, "scenarios per chunk")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort by field[:asc|desc]: row, name, status, offset, remaining, panels")
	cmd.Flags().IntVar(&page.Limit, "limit", 0, "show at most this many scenarios (0 for all)")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "skip this many scenarios")
	cmd.Flags().IntVar(&page.Page, "page", 0, "page number, with --page-size")
	cmd.Flags().IntVar(&page.PageSize, "page-size", 0, "scenarios per page")
	outputFlag(cmd, &output)
	return cmd
}

// batchView selects the order and window of rendered outcomes.
type batchView struct {
	sorter *pagination.OutcomeSorter
	field  string
	order  string
	page   pagination.Params
}

func newBatchView(sortBy string, page pagination.Params) (batchView, error) {
	v := batchView{sorter: pagination.NewOutcomeSorter(), page: page}
	var err error
	if v.field, v.order, err = pagination.ParseSort(sortBy); err != nil {
		return v, err
	}
	if err = v.sorter.Validate(v.field); err != nil {
		return v, err
	}
	return v, page.Validate()
}

func runBatch(cmd *cobra.Command, in, out, format string, view batchView, opts batch.Options) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	file, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("opening scenarios: %w", err)
	}
	defer func() { _ = file.Close() }()

	scenarios, err := batch.ReadXLSX(file)
	if err != nil {
		return err
	}

	if opts.GridFactor, err = config.GetGlobalConfig().GridFactor(); err != nil {
		return err
	}
	opts.OnProgress = func(p batch.ProgressSnapshot) {
		log.Debug().Ctx(ctx).
			Int("processed", p.ProcessedItems).
			Int("total", p.TotalItems).
			Float64("percent", p.PercentComplete).
			Msg("batch progress")
	}

	outcomes, err := batch.Evaluate(ctx, scenarios, opts)
	if err != nil {
		return err
	}
	summary := batch.Summarize(outcomes)
	outcomes = view.sorter.Sort(outcomes, view.field, view.order)
	log.Info().Ctx(ctx).
		Int("total", summary.Total).
		Int("failed", summary.Failed).
		Msg("batch evaluated")

	if out != "" {
		if err = writeBatchXLSX(out, outcomes); err != nil {
			return err
		}
		cmd.PrintErrf("Results written to %s\n", out)
	}
	return renderBatch(cmd, format, view.page, outcomes, summary)
}

func writeBatchXLSX(path string, outcomes []batch.Outcome) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return batch.WriteXLSX(f, outcomes)
}

// renderBatch writes the selected page of outcomes. The summary always
// covers every scenario.
func renderBatch(
	cmd *cobra.Command,
	format string,
	page pagination.Params,
	all []batch.Outcome,
	summary batch.Summary,
) error {
	w := cmd.OutOrStdout()
	outcomes := pagination.Apply(page, all)
	switch format {
	case config.FormatJSON:
		records := make([]batchRecord, 0, len(outcomes))
		for _, o := range outcomes {
			records = append(records, toBatchRecord(o))
		}
		body := map[string]any{"summary": summary, "results": records}
		if page.IsEnabled() {
			body["pagination"] = pagination.NewMeta(page, len(all))
		}
		return writeJSON(w, format, body)
	case config.FormatNDJSON:
		for _, o := range outcomes {
			if err := writeJSON(w, format, toBatchRecord(o)); err != nil {
				return err
			}
		}
		return nil
	}

	precision := config.GetOutputPrecision()
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		row := []string{strconv.Itoa(o.Scenario.Row), o.Scenario.Name}
		if r := o.Result; r != nil {
			row = append(row,
				solar.FormatFloat(r.CarbonOffset, precision),
				solar.FormatFloat(r.RemainingEmissions, precision),
				solar.FormatFloat(r.AdditionalEnergyNeeded, precision),
				solar.FormatFloat(r.EnergyPerPanel, precision),
				solar.FormatPanels(r.AdditionalPanelsNeeded),
				batch.Status(o))
		} else {
			row = append(row, "", "", "", "", "", "error: "+o.ErrorMessage())
		}
		rows = append(rows, row)
	}
	_, err := fmt.Fprintf(w, "%s\n%d scenarios: %d ok, %d failed, %d at net-zero\n",
		tui.RenderTable(batch.ResultHeaders, rows, styledOutput(cmd)),
		summary.Total, summary.Succeeded, summary.Failed, summary.NetZero)
	return err
}

func toBatchRecord(o batch.Outcome) batchRecord {
	return batchRecord{
		Row:    o.Scenario.Row,
		Name:   o.Scenario.Name,
		Status: batch.Status(o),
		Result: o.Result,
		Error:  o.ErrorMessage(),
	}
}
