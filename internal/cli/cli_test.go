package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/netzero/internal/cli"
	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/solar"
)

// setupCLITest isolates the global config directory and the working
// directory, and resets package-level state afterwards. It returns the
// config home.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv("NO_COLOR", "1")
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

type offsetJSON struct {
	Input    solar.OffsetInput  `json:"input"`
	Result   solar.OffsetResult `json:"result"`
	Lines    []solar.ResultLine `json:"lines"`
	Chart    solar.ChartData    `json:"chart"`
	Message  string             `json:"message"`
	Warnings []string           `json:"warnings"`
}

func decodeOffset(t *testing.T, out string) offsetJSON {
	t.Helper()
	var got offsetJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	return got
}

func TestOffsetJSON(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "offset",
		"--panels", "3805", "--energy", "50000", "--emissions", "500,000", "--output", "json")
	require.NoError(t, err)

	got := decodeOffset(t, out)
	assert.InDelta(t, 20850, got.Result.CarbonOffset, 1e-6)
	assert.InDelta(t, 479150, got.Result.RemainingEmissions, 1e-6)
	assert.InDelta(t, 1149040.7673860912, got.Result.AdditionalEnergyNeeded, 1e-6)
	assert.InDelta(t, 87442.00239808155, got.Result.AdditionalPanelsNeeded, 1e-6)
	assert.InDelta(t, 4.17, got.Chart.Offset.Percent, 0.01)
	assert.Empty(t, got.Message)
}

func TestOffsetDefaultsFromConfig(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "offset", "--output", "json")
	require.NoError(t, err)
	got := decodeOffset(t, out)
	assert.Equal(t, 3805, got.Input.PanelCount)
	assert.InDelta(t, 20850, got.Result.CarbonOffset, 1e-6)
}

func TestOffsetUnits(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "offset", "--panels", "3805",
		"--energy", "50", "--energy-unit", "MWh",
		"--emissions", "500", "--emissions-unit", "tons", "-o", "json")
	require.NoError(t, err)
	got := decodeOffset(t, out)
	assert.InDelta(t, 50000, got.Result.EnergyProducedKWh, 1e-9)
	assert.InDelta(t, 500000, got.Result.CurrentEmissionsKg, 1e-9)
	assert.InDelta(t, 20850, got.Result.CarbonOffset, 1e-6)
}

func TestOffsetTable(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "offset", "--panels", "3805", "--energy", "50000", "--emissions", "500000")
	require.NoError(t, err)
	assert.Contains(t, out, "Total carbon offset from current 3,805 panels")
	assert.Contains(t, out, "20,850.00 kg CO₂")
	assert.Contains(t, out, "479,150.00 kg CO₂")
	assert.Contains(t, out, "87,442")
	assert.Contains(t, out, solar.ChartTitle)
}

func TestOffsetNetZero(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "offset", "--panels", "10", "--energy", "10000", "--emissions", "100")
	require.NoError(t, err)
	assert.Contains(t, out, solar.NetZeroReachedTitle)
	assert.NotContains(t, out, solar.LabelAdditionalPanels)

	out, _, err = execute(t, "offset", "--panels", "10", "--energy", "10000", "--emissions", "100", "-o", "ndjson")
	require.NoError(t, err)
	assert.Equal(t, solar.NetZeroReachedTitle, decodeOffset(t, out).Message)
}

func TestOffsetInvalidInput(t *testing.T) {
	setupCLITest(t)

	_, _, err := execute(t, "offset", "--panels", "abc")
	require.ErrorIs(t, err, solar.ErrInvalidInput)
	assert.Contains(t, err.Error(), "--panels")

	_, _, err = execute(t, "offset", "--emissions", "1,5")
	require.ErrorIs(t, err, solar.ErrInvalidInput, "a decimal comma is not a thousands separator")

	_, _, err = execute(t, "offset", "--panels", "3.5")
	require.ErrorIs(t, err, solar.ErrInvalidInput)

	_, _, err = execute(t, "offset", "--panels", "0")
	require.ErrorIs(t, err, solar.ErrInvalidInput)

	_, _, err = execute(t, "offset", "--panels", "1e20")
	require.ErrorIs(t, err, solar.ErrInvalidInput)
	assert.Contains(t, err.Error(), `"1e20"`, "the error echoes the typed text")

	_, _, err = execute(t, "offset", "--energy", "0")
	require.ErrorIs(t, err, solar.ErrInvalidInput)
	assert.Contains(t, err.Error(), solar.MsgNoEnergy)

	_, _, err = execute(t, "offset", "--energy-unit", "joules")
	require.ErrorIs(t, err, solar.ErrInvalidUnit)

	_, _, err = execute(t, "offset", "--grid-factor", "-1")
	require.ErrorIs(t, err, solar.ErrDivisionGuard)

	_, _, err = execute(t, "offset", "--panels", "10", "--energy", "5e-324", "--emissions", "1000", "-o", "json")
	require.ErrorIs(t, err, solar.ErrDivisionGuard)

	_, _, err = execute(t, "offset", "--grid-preset", "mars")
	require.ErrorIs(t, err, solar.ErrUnknownPreset)

	_, _, err = execute(t, "offset", "--output", "yaml")
	require.Error(t, err)
}

func TestOffsetLenient(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "offset", "--lenient", "--panels", "lots", "--energy", "??", "-o", "json")
	require.NoError(t, err)
	got := decodeOffset(t, out)
	assert.Equal(t, 3805, got.Input.PanelCount, "falls back to the configured default")
	assert.InDelta(t, 50000, got.Input.EnergyProduced, 0)
	assert.Contains(t, got.Warnings, "Please enter a valid number for solar panels.")
	assert.Contains(t, got.Warnings, "Please enter a valid number for energy production.")

	for _, panels := range []string{"2.5", "1e20"} {
		_, errOut, err := execute(t, "offset", "--lenient", "--panels", panels)
		require.NoError(t, err, panels)
		assert.Contains(t, errOut, "Please enter a valid number for solar panels.", panels)
	}
}

func TestOffsetGridFactorPrecedence(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvGridFactor, "0.5")

	out, _, err := execute(t, "offset", "-o", "json")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, decodeOffset(t, out).Result.GridEmissionFactor, 0, "env overrides the preset")

	out, _, err = execute(t, "offset", "--grid-factor", "0.3", "-o", "json")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, decodeOffset(t, out).Result.GridEmissionFactor, 0, "flag overrides env")

	out, _, err = execute(t, "offset", "--grid-preset", "uk", "-o", "json")
	require.NoError(t, err)
	assert.InDelta(t, 0.207, decodeOffset(t, out).Result.GridEmissionFactor, 0)

	_, _, err = execute(t, "offset", "--grid-preset", "uk", "--grid-factor", "0.3")
	require.Error(t, err, "preset and factor are exclusive")
}

func TestPlan(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "plan", "--energy-per-panel", "400", "--cost-per-panel", "250",
		"--emissions", "5000", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Result solar.PlanResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 166.8, got.Result.CarbonOffsetPerPanel, 1e-9)
	assert.InDelta(t, 29.97601918465228, got.Result.PanelsNeeded, 1e-9)
	assert.InDelta(t, 7494.00479616307, got.Result.TotalInstallationCost, 1e-6)
	assert.InDelta(t, 3201.438848920864, got.Result.PotentialSavings, 1e-6)

	out, _, err = execute(t, "plan", "--energy-per-panel", "400", "--cost-per-panel", "250", "--emissions", "5000")
	require.NoError(t, err)
	assert.Contains(t, out, solar.LabelPanelsNeeded)
	assert.Contains(t, out, "7,494.00")

	_, _, err = execute(t, "plan", "--energy-per-panel", "0")
	require.ErrorIs(t, err, solar.ErrDivisionGuard)
}

func TestPlanDotEnv(t *testing.T) {
	setupCLITest(t)
	// Register restore of the variable, then unset it so .env can provide it.
	t.Setenv(config.EnvCostPerKWh, "unset")
	require.NoError(t, os.Unsetenv(config.EnvCostPerKWh))
	require.NoError(t, os.WriteFile(".env", []byte(config.EnvCostPerKWh+"=0.5\n"), 0o600))

	out, _, err := execute(t, "plan", "--energy-per-panel", "400", "--cost-per-panel", "250",
		"--emissions", "5000", "-o", "json")
	require.NoError(t, err)
	var got struct {
		Result solar.PlanResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 0.5, got.Result.CostPerKWh, 0)
}

func TestProjectOverlay(t *testing.T) {
	setupCLITest(t)
	require.NoError(t, os.MkdirAll(config.ProjectDirName, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(config.ProjectDirName, "config.yaml"),
		[]byte("output:\n  default_format: json\n  precision: 3\n"), 0o600))

	out, _, err := execute(t, "offset", "--panels", "3805", "--energy", "50000", "--emissions", "500000")
	require.NoError(t, err)
	got := decodeOffset(t, out)
	assert.Equal(t, "20,850.000 kg CO₂", got.Lines[0].Value)
}

func TestUnitsAndGridFactors(t *testing.T) {
	setupCLITest(t)

	out, _, err := execute(t, "units", "-o", "json")
	require.NoError(t, err)
	var units []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &units))
	assert.Len(t, units, 5)

	out, _, err = execute(t, "units")
	require.NoError(t, err)
	assert.Contains(t, out, "GWh")
	assert.Contains(t, out, "1000000 kWh")

	out, _, err = execute(t, "grid-factors")
	require.NoError(t, err)
	assert.Contains(t, out, "0.417")
	assert.Contains(t, out, "france")

	out, _, err = execute(t, "grid-factors", "-o", "ndjson")
	require.NoError(t, err)
	assert.Len(t, bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n")), len(solar.GridFactorPresets))
}

func TestInteractiveNeedsTerminal(t *testing.T) {
	setupCLITest(t)
	_, _, err := execute(t, "interactive")
	require.ErrorIs(t, err, cli.ErrNotTerminal)
}
