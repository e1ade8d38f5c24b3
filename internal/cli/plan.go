package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/logging"
	"github.com/rshade/netzero/internal/solar"
)

// NewPlanCmd creates the plan command: how many panels offset all current
// emissions, what they cost and what they save.
func NewPlanCmd() *cobra.Command {
	var (
		flags  planFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan the panels, cost and savings needed to offset all emissions",
		Example: `  netzero plan --energy-per-panel 400 --cost-per-panel 250 --emissions 5000
  netzero plan --energy-per-panel 400 --cost-per-panel 250 --emissions 5 --emissions-unit tons --cost-per-kwh 0.3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(output)
			if err != nil {
				return err
			}
			in, warnings, err := flags.resolve(config.GetGlobalConfig())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			res, err := solar.ComputePlan(in)
			if err != nil {
				logging.FromContext(ctx).Debug().Ctx(ctx).Err(err).Msg("plan calculation rejected")
				return calcError(err)
			}
			logging.FromContext(ctx).Debug().Ctx(ctx).
				Float64("panels_needed", res.PanelsNeeded).
				Float64("installation_cost", res.TotalInstallationCost).
				Msg("plan calculated")
			return renderPlan(cmd, format, in, res, warnings)
		},
	}

	flags.register(cmd)
	outputFlag(cmd, &output)
	return cmd
}
