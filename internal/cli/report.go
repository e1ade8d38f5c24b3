package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/logging"
	"github.com/rshade/netzero/internal/report"
	"github.com/rshade/netzero/internal/solar"
)

// NewReportCmd creates the report command: exports an offset calculation
// with its chart as PDF or XLSX.
func NewReportCmd() *cobra.Command {
	var (
		flags  offsetFlags
		format string
		out    string
		title  string
		author string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export an offset calculation as a PDF or XLSX report",
		Example: `  netzero report --format pdf --out report.pdf --panels 3805 --energy 50000 --emissions 500000
  netzero report --format xlsx --out - > report.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			if out == "" {
				return errors.New("--out is required (use - for stdout)")
			}

			cfg := config.GetGlobalConfig()
			in, warnings, err := flags.resolve(cfg)
			if err != nil {
				return err
			}
			printWarnings(cmd, warnings, false)

			res, err := solar.ComputeOffset(in)
			if err != nil {
				return calcError(err)
			}

			meta := report.Meta{Title: cfg.Report.Title, Author: cfg.Report.Author}
			if title != "" {
				meta.Title = title
			}
			if author != "" {
				meta.Author = author
			}
			doc := report.NewDocument(meta, in, res, cfg.Output.Precision)

			if err = writeReport(cmd, out, f, doc); err != nil {
				return err
			}
			ctx := cmd.Context()
			logging.FromContext(ctx).Info().Ctx(ctx).
				Str("document_id", doc.ID).
				Str("format", string(f)).
				Str("path", out).
				Msg("report written")
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(report.FormatPDF), "report format: pdf or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output file, - for stdout")
	cmd.Flags().StringVar(&title, "title", "", "report title (default from config)")
	cmd.Flags().StringVar(&author, "author", "", "report author (default from config)")
	return cmd
}

func writeReport(cmd *cobra.Command, path string, f report.Format, doc report.Document) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		file, createErr := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if createErr != nil {
			return fmt.Errorf("creating report file: %w", createErr)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = file
	}
	if err = report.Write(w, f, doc); err != nil {
		return err
	}
	if path != "-" {
		cmd.PrintErrf("Report %s written to %s\n", doc.ID, path)
	}
	return nil
}
