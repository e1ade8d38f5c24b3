package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/tui"
)

// ErrNotTerminal is returned when the interactive form has no terminal to run in.
var ErrNotTerminal = errors.New("interactive mode needs a terminal on stdin and stdout")

// NewInteractiveCmd creates the interactive command: a terminal form that
// recalculates on every commit and draws the offset chart.
func NewInteractiveCmd() *cobra.Command {
	var printResult bool

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"tui"},
		Short:   "Open the interactive calculator form",
		Long: `Opens a terminal form seeded with the configured defaults.

Keys: up/down move between fields, enter recalculates, tab cycles the unit of
the focused field, esc or ctrl+c quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if tui.DetectOutputMode(false, false, true) != tui.OutputModeInteractive {
				return ErrNotTerminal
			}
			model, err := newCalculatorModel(cmd)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("running interactive calculator: %w", err)
			}
			calc, ok := final.(*tui.CalculatorModel)
			if !ok {
				return fmt.Errorf("unexpected model type: %T, expected *tui.CalculatorModel", final)
			}
			if !printResult {
				return nil
			}
			res, ok := calc.Result()
			if !ok {
				return nil
			}
			return renderOffset(cmd, config.FormatTable, calc.Input(), res, calc.Warnings())
		},
	}

	cmd.Flags().BoolVar(&printResult, "print", false, "print the last result after quitting")
	return cmd
}

// newCalculatorModel seeds the form from the global configuration.
func newCalculatorModel(cmd *cobra.Command) (*tui.CalculatorModel, error) {
	cfg := config.GetGlobalConfig()
	energyUnit, err := cfg.EnergyUnit()
	if err != nil {
		return nil, err
	}
	emissionsUnit, err := cfg.EmissionsUnit()
	if err != nil {
		return nil, err
	}
	factor, err := cfg.GridFactor()
	if err != nil {
		return nil, err
	}
	return tui.NewCalculatorModel(cmd.Context(), tui.CalculatorDefaults{
		PanelCount:         cfg.Calculator.PanelCount,
		EnergyProduced:     cfg.Calculator.EnergyProduced,
		EnergyUnit:         energyUnit,
		CurrentEmissions:   cfg.Calculator.CurrentEmissions,
		EmissionsUnit:      emissionsUnit,
		GridEmissionFactor: factor,
		Precision:          cfg.Output.Precision,
	}), nil
}
