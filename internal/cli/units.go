package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/solar"
	"github.com/rshade/netzero/internal/tui"
)

type unitRecord struct {
	Kind     string  `json:"kind"`
	Name     string  `json:"name"`
	ToBase   float64 `json:"to_base"`
	BaseUnit string  `json:"base_unit"`
}

type gridFactorRecord struct {
	Name    string  `json:"name"`
	Factor  float64 `json:"factor"`
	Default bool    `json:"default,omitempty"`
}

// NewUnitsCmd creates the units command listing accepted energy and emissions units.
func NewUnitsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "units",
		Short: "List accepted energy and emissions units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(output)
			if err != nil {
				return err
			}
			var records []unitRecord
			for _, u := range solar.EnergyUnits {
				f, _ := solar.NormalizeEnergy(1, u)
				records = append(records, unitRecord{"energy", u.String(), f, solar.EnergyKWh.String()})
			}
			for _, u := range solar.EmissionsUnits {
				f, _ := solar.NormalizeEmissions(1, u)
				records = append(records, unitRecord{"emissions", u.String(), f, solar.EmissionsKg.String()})
			}
			if format != config.FormatTable {
				return writeRecords(cmd, format, records)
			}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{r.Kind, r.Name, formatFactor(r.ToBase) + " " + r.BaseUnit})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderTable([]string{"Kind", "Unit", "Equals"}, rows, styledOutput(cmd)))
			return err
		},
	}
	outputFlag(cmd, &output)
	return cmd
}

// NewGridFactorsCmd creates the grid-factors command listing the presets.
func NewGridFactorsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "grid-factors",
		Short: "List grid emission factor presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(output)
			if err != nil {
				return err
			}
			current := config.GetGlobalConfig().Calculator.GridFactorPreset
			var records []gridFactorRecord
			for _, name := range solar.GridFactorNames() {
				records = append(records, gridFactorRecord{
					Name:    name,
					Factor:  solar.GridFactorPresets[name],
					Default: name == current,
				})
			}
			if format != config.FormatTable {
				return writeRecords(cmd, format, records)
			}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				mark := ""
				if r.Default {
					mark = "*"
				}
				rows = append(rows, []string{r.Name, formatFactor(r.Factor), mark})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(),
				tui.RenderTable([]string{"Preset", "kg CO₂/kWh", "Configured"}, rows, styledOutput(cmd)))
			return err
		},
	}
	outputFlag(cmd, &output)
	return cmd
}

// writeRecords writes a json array, or one ndjson line per record.
func writeRecords[T any](cmd *cobra.Command, format string, records []T) error {
	if format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), format, records)
	}
	for _, r := range records {
		if err := writeJSON(cmd.OutOrStdout(), format, r); err != nil {
			return err
		}
	}
	return nil
}
