package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/logging"
	"github.com/rshade/netzero/internal/solar"
)

// NewOffsetCmd creates the offset command: the carbon offset of the existing
// panels and the additional panels needed to reach net-zero.
func NewOffsetCmd() *cobra.Command {
	var (
		flags  offsetFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "offset",
		Short: "Calculate the offset of existing panels and the panels still needed",
		Long: `Calculates the carbon already offset by the existing panels, the emissions
that remain, and the additional energy and panels needed to offset them.

Flags that are not given take their values from the configuration.`,
		Example: `  # Defaults from the configuration
  netzero offset

  # Explicit values with units
  netzero offset --panels 3805 --energy 50 --energy-unit MWh --emissions 500 --emissions-unit tons

  # A regional grid factor, JSON output
  netzero offset --panels 20 --energy 8000 --emissions 6000 --grid-preset uk --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOffset(cmd, &flags, output)
		},
	}

	flags.register(cmd)
	outputFlag(cmd, &output)
	return cmd
}

func runOffset(cmd *cobra.Command, flags *offsetFlags, output string) error {
	format, err := outputFormat(output)
	if err != nil {
		return err
	}
	in, warnings, err := flags.resolve(config.GetGlobalConfig())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	res, err := solar.ComputeOffset(in)
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("offset calculation rejected")
		return calcError(err)
	}
	log.Debug().Ctx(ctx).
		Int("panels", in.PanelCount).
		Float64("carbon_offset", res.CarbonOffset).
		Float64("additional_panels", res.AdditionalPanelsNeeded).
		Bool("net_zero", res.NetZeroReached).
		Msg("offset calculated")

	return renderOffset(cmd, format, in, res, warnings)
}
