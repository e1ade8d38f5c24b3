package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/netzero/internal/solar"
)

func newTestCalculator() *CalculatorModel {
	return NewCalculatorModel(context.Background(), CalculatorDefaults{
		PanelCount:       3805,
		EnergyProduced:   50000,
		EnergyUnit:       solar.EnergyKWh,
		CurrentEmissions: 500000,
		EmissionsUnit:    solar.EmissionsKg,
		Precision:        2,
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewCalculatorModel_InitialResult(t *testing.T) {
	m := newTestCalculator()

	res, ok := m.Result()
	require.True(t, ok)
	assert.InDelta(t, 20850.0, res.CarbonOffset, 1e-6)
	assert.InDelta(t, solar.DefaultGridEmissionFactor, res.GridEmissionFactor, 1e-9)
	assert.NoError(t, m.Err())
	assert.Empty(t, m.Warnings())
	assert.Equal(t, FieldPanels, m.focused)
	assert.NotNil(t, m.Init())
}

func TestCalculatorModel_TypeAndCommit(t *testing.T) {
	m := newTestCalculator()
	m.fields[FieldPanels].input.SetValue("")

	m.Update(keyRunes("1"))
	m.Update(keyRunes("0"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "10", m.fields[FieldPanels].input.Value())
	assert.Equal(t, 10, m.Input().PanelCount)

	res, ok := m.Result()
	require.True(t, ok)
	assert.InDelta(t, 5000.0, res.EnergyPerPanel, 1e-9)
}

func TestCalculatorModel_InvalidTextKeepsPrevious(t *testing.T) {
	m := newTestCalculator()
	m.fields[FieldEnergy].input.SetValue("lots")
	m.fields[FieldPanels].input.SetValue("2.5")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{
		"Please enter a valid number for solar panels.",
		"Please enter a valid number for energy production.",
	}, m.Warnings())
	assert.InDelta(t, 50000.0, m.Input().EnergyProduced, 1e-9)
	assert.Equal(t, 3805, m.Input().PanelCount)

	_, ok := m.Result()
	assert.True(t, ok, "fallback values still calculate")
	assert.Contains(t, m.View(), "Please enter a valid number for energy production.")
}

func TestCalculatorModel_ZeroEnergyShowsError(t *testing.T) {
	m := newTestCalculator()
	m.fields[FieldEnergy].input.SetValue("0")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.ErrorIs(t, m.Err(), solar.ErrInvalidInput)
	_, ok := m.Result()
	assert.False(t, ok)
	assert.Contains(t, m.View(), solar.MsgNoEnergy)
}

func TestCalculatorModel_TabCyclesUnit(t *testing.T) {
	m := newTestCalculator()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, FieldEnergy, m.focused)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, solar.EnergyMWh, m.Input().EnergyUnit)

	// 50000 MWh covers all emissions.
	res, ok := m.Result()
	require.True(t, ok)
	assert.True(t, res.NetZeroReached)
	assert.Contains(t, m.View(), solar.NetZeroReachedTitle)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, solar.EnergyKWh, m.Input().EnergyUnit, "units wrap around")
}

func TestCalculatorModel_EmissionsUnit(t *testing.T) {
	m := newTestCalculator()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, solar.EmissionsTons, m.Input().EmissionsUnit)
	res, ok := m.Result()
	require.True(t, ok)
	assert.InDelta(t, 500_000_000.0, res.CurrentEmissionsKg, 1e-3)
}

func TestCalculatorModel_TabOnUnitlessFieldIsNoop(t *testing.T) {
	m := newTestCalculator()
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, solar.EnergyKWh, m.Input().EnergyUnit)
	assert.Equal(t, solar.EmissionsKg, m.Input().EmissionsUnit)
}

func TestCalculatorModel_FocusBounds(t *testing.T) {
	m := newTestCalculator()
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, FieldPanels, m.focused)

	for range 10 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, FieldGridFactor, m.focused)
}

func TestCalculatorModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m := newTestCalculator()
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	}
}

func TestCalculatorModel_TypingQDoesNotQuit(t *testing.T) {
	m := newTestCalculator()
	m.fields[FieldPanels].input.SetValue("")

	m.Update(keyRunes("q"))
	assert.False(t, m.quitting)
	assert.Equal(t, "q", m.fields[FieldPanels].input.Value())

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"Please enter a valid number for solar panels."}, m.Warnings())
	assert.Equal(t, 3805, m.Input().PanelCount)
}

func TestCalculatorModel_PanelCountOutOfRange(t *testing.T) {
	m := newTestCalculator()
	m.fields[FieldPanels].input.SetValue("1e20")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"Please enter a valid number for solar panels."}, m.Warnings())
	assert.Equal(t, 3805, m.Input().PanelCount)
	_, ok := m.Result()
	assert.True(t, ok)
}

func TestCalculatorModel_WindowSize(t *testing.T) {
	m := newTestCalculator()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}
