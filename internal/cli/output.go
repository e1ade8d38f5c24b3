package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/solar"
	"github.com/rshade/netzero/internal/tui"
)

// outputFlag registers --output with the configured default.
func outputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", "", "output format (table, json, ndjson) (default from config)")
}

// outputFormat returns the validated output format, falling back to the
// configured default.
func outputFormat(flag string) (string, error) {
	format := flag
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (want table, json or ndjson)", format)
	}
}

// styledOutput reports whether table output should use colors.
func styledOutput(cmd *cobra.Command) bool {
	plain, _ := cmd.Flags().GetBool("plain")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return tui.DetectOutputMode(plain, noColor, false) == tui.OutputModeStyled
}

// writeJSON encodes v as indented JSON, or compact on one line for ndjson.
func writeJSON(w io.Writer, format string, v any) error {
	enc := json.NewEncoder(w)
	if format == config.FormatJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// printWarnings writes parse warnings to stderr.
func printWarnings(cmd *cobra.Command, warnings []string, styled bool) {
	if len(warnings) == 0 {
		return
	}
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), tui.RenderWarnings(warnings, styled))
}

// offsetOutput is the json/ndjson form of an offset calculation.
type offsetOutput struct {
	Input         solar.OffsetInput   `json:"input"`
	Result        solar.OffsetResult  `json:"result"`
	Lines         []solar.ResultLine  `json:"lines"`
	Chart         solar.ChartData     `json:"chart"`
	Equivalencies []solar.Equivalency `json:"equivalencies,omitempty"`
	Message       string              `json:"message,omitempty"`
	Warnings      []string            `json:"warnings,omitempty"`
}

func renderOffset(cmd *cobra.Command, format string, in solar.OffsetInput, res solar.OffsetResult, warnings []string) error {
	precision := config.GetOutputPrecision()
	if format != config.FormatTable {
		out := offsetOutput{
			Input:         in,
			Result:        res,
			Lines:         solar.OffsetLines(res, precision),
			Chart:         solar.ChartFor(res),
			Equivalencies: solar.Equivalencies(res.CarbonOffset),
			Warnings:      warnings,
		}
		if res.NetZeroReached {
			out.Message = solar.NetZeroReachedTitle
		}
		return writeJSON(cmd.OutOrStdout(), format, out)
	}

	styled := styledOutput(cmd)
	printWarnings(cmd, warnings, styled)
	_, err := fmt.Fprint(cmd.OutOrStdout(), tui.RenderOffsetSummary(res, precision, styled, tui.TerminalWidth()))
	return err
}

// planOutput is the json/ndjson form of a plan calculation.
type planOutput struct {
	Input    solar.PlanInput    `json:"input"`
	Result   solar.PlanResult   `json:"result"`
	Lines    []solar.ResultLine `json:"lines"`
	Warnings []string           `json:"warnings,omitempty"`
}

func renderPlan(cmd *cobra.Command, format string, in solar.PlanInput, res solar.PlanResult, warnings []string) error {
	precision := config.GetOutputPrecision()
	if format != config.FormatTable {
		return writeJSON(cmd.OutOrStdout(), format, planOutput{
			Input:    in,
			Result:   res,
			Lines:    solar.PlanLines(res, precision),
			Warnings: warnings,
		})
	}

	styled := styledOutput(cmd)
	printWarnings(cmd, warnings, styled)
	_, err := fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlanSummary(res, precision, styled, tui.TerminalWidth()))
	return err
}

// calcError turns a calculation error into the message shown to users while
// keeping it matchable with errors.Is.
func calcError(err error) error {
	msg := solar.UserMessage(err)
	if msg == err.Error() {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
