package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/netzero/internal/logging"
	"github.com/rshade/netzero/internal/solar"
)

// Form field indexes.
const (
	FieldPanels = iota
	FieldEnergy
	FieldEmissions
	FieldGridFactor
	fieldCount
)

const (
	calculatorDefaultWidth  = 80
	calculatorDefaultHeight = 24
	inputCharLimit          = 24
	inputWidth              = 18
)

// CalculatorDefaults seeds the form.
type CalculatorDefaults struct {
	PanelCount         int
	EnergyProduced     float64
	EnergyUnit         solar.EnergyUnit
	CurrentEmissions   float64
	EmissionsUnit      solar.EmissionsUnit
	GridEmissionFactor float64
	Precision          int
}

// formField is one editable number. value is the last valid number and is
// what the calculation uses when the text does not parse.
type formField struct {
	name    string
	label   string
	input   textinput.Model
	value   float64
	integer bool
	units   []string
	unit    int
}

func (f *formField) unitName() string {
	if len(f.units) == 0 {
		return ""
	}
	return f.units[f.unit]
}

// CalculatorModel is the Bubble Tea model of the interactive offset form.
// Every commit re-resolves all fields and recalculates.
type CalculatorModel struct {
	ctx       context.Context
	fields    []formField
	focused   int
	precision int

	result    solar.OffsetResult
	hasResult bool
	err       error
	warnings  []string

	width    int
	height   int
	quitting bool
}

// NewCalculatorModel builds the form and computes the initial result.
func NewCalculatorModel(ctx context.Context, d CalculatorDefaults) *CalculatorModel {
	if d.GridEmissionFactor == 0 {
		d.GridEmissionFactor = solar.DefaultGridEmissionFactor
	}

	energyUnits := make([]string, len(solar.EnergyUnits))
	for i, u := range solar.EnergyUnits {
		energyUnits[i] = u.String()
	}
	emissionsUnits := make([]string, len(solar.EmissionsUnits))
	for i, u := range solar.EmissionsUnits {
		emissionsUnits[i] = u.Label()
	}

	m := &CalculatorModel{
		ctx:       ctx,
		precision: d.Precision,
		width:     calculatorDefaultWidth,
		height:    calculatorDefaultHeight,
		fields: []formField{
			FieldPanels: {
				name: solar.FieldSolarPanels, label: "Current number of solar panels",
				value: float64(d.PanelCount), integer: true,
			},
			FieldEnergy: {
				name: solar.FieldEnergyProduction, label: "Total energy produced",
				value: d.EnergyProduced, units: energyUnits, unit: unitIndex(energyUnits, d.EnergyUnit.String()),
			},
			FieldEmissions: {
				name: solar.FieldCarbonEmissions, label: "Current total carbon emissions",
				value: d.CurrentEmissions, units: emissionsUnits, unit: unitIndex(emissionsUnits, d.EmissionsUnit.Label()),
			},
			FieldGridFactor: {
				name: solar.FieldGridFactor, label: "Grid emission factor (kg CO₂/kWh)",
				value: d.GridEmissionFactor,
			},
		},
	}

	for i := range m.fields {
		m.fields[i].input = newFieldInput(formatInput(m.fields[i].value, m.fields[i].integer))
	}
	m.fields[FieldPanels].input.Focus()
	m.recalculate()
	return m
}

func newFieldInput(value string) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = inputCharLimit
	ti.Width = inputWidth
	ti.Prompt = ""
	ti.SetValue(value)
	return ti
}

func unitIndex(units []string, name string) int {
	for i, u := range units {
		if u == name {
			return i
		}
	}
	return 0
}

func formatInput(v float64, integer bool) string {
	if integer {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Init starts the cursor blink.
func (m *CalculatorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m *CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	m.fields[m.focused].input, cmd = m.fields[m.focused].input.Update(msg)
	return m, cmd
}

// handleKeyMsg processes keyboard input.
//
//nolint:exhaustive // Only handling relevant key types for form navigation.
func (m *CalculatorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyUp, tea.KeyShiftTab:
		return m, m.focus(m.focused - 1)

	case tea.KeyDown:
		return m, m.focus(m.focused + 1)

	case tea.KeyTab:
		f := &m.fields[m.focused]
		if len(f.units) > 0 {
			f.unit = (f.unit + 1) % len(f.units)
			m.commit()
		}
		return m, nil

	case tea.KeyEnter:
		m.commit()
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focused].input, cmd = m.fields[m.focused].input.Update(msg)
	return m, cmd
}

func (m *CalculatorModel) focus(i int) tea.Cmd {
	if i < 0 || i >= len(m.fields) {
		return nil
	}
	m.fields[m.focused].input.Blur()
	m.focused = i
	return m.fields[i].input.Focus()
}

// commit resolves every field from its text, keeping the previous value and
// collecting a warning for text that is not a number, then recalculates.
func (m *CalculatorModel) commit() {
	m.warnings = nil
	for i := range m.fields {
		f := &m.fields[i]
		r := solar.ResolveField(f.name, f.input.Value(), f.value)
		if r.Parsed && f.integer && !solar.IsPanelCount(r.Value) {
			r = solar.FieldResolution{Value: f.value, Warning: solar.InvalidNumberWarning(f.name)}
		}
		if r.Warning != "" {
			m.warnings = append(m.warnings, r.Warning)
		}
		f.value = r.Value
	}
	m.recalculate()
}

func (m *CalculatorModel) recalculate() {
	in := m.Input()
	res, err := solar.ComputeOffset(in)

	log := logging.FromContext(m.ctx)
	if err != nil {
		m.err = err
		m.hasResult = false
		log.Debug().Ctx(m.ctx).Err(err).Msg("offset calculation rejected")
		return
	}
	m.err = nil
	m.result = res
	m.hasResult = true
	log.Debug().Ctx(m.ctx).
		Int("panels", in.PanelCount).
		Float64("carbon_offset", res.CarbonOffset).
		Bool("net_zero", res.NetZeroReached).
		Msg("offset recalculated")
}

// Input returns the calculation input built from the resolved field values.
func (m *CalculatorModel) Input() solar.OffsetInput {
	emissionsUnit, _ := solar.ParseEmissionsUnit(m.fields[FieldEmissions].unitName())
	return solar.OffsetInput{
		PanelCount:         int(m.fields[FieldPanels].value),
		EnergyProduced:     m.fields[FieldEnergy].value,
		EnergyUnit:         solar.EnergyUnit(m.fields[FieldEnergy].unitName()),
		CurrentEmissions:   m.fields[FieldEmissions].value,
		EmissionsUnit:      emissionsUnit,
		GridEmissionFactor: m.fields[FieldGridFactor].value,
	}
}

// Result returns the last successful result and whether there is one.
func (m *CalculatorModel) Result() (solar.OffsetResult, bool) {
	return m.result, m.hasResult
}

// Err returns the error of the last calculation, if it failed.
func (m *CalculatorModel) Err() error {
	return m.err
}

// Warnings returns the parse warnings of the last commit.
func (m *CalculatorModel) Warnings() []string {
	return m.warnings
}

// View renders the form, warnings and results.
func (m *CalculatorModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(AppTitle))
	sb.WriteString("\n\n")

	for i := range m.fields {
		f := &m.fields[i]
		cursor := "  "
		label := LabelStyle.Render(f.label)
		if i == m.focused {
			cursor = FocusStyle.Render(IconCursor + " ")
			label = FocusStyle.Render(f.label)
		}
		sb.WriteString(cursor)
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(f.input.View())
		if unit := f.unitName(); unit != "" {
			sb.WriteString(" ")
			sb.WriteString(ValueStyle.Render("[" + unit + "]"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(m.warnings) > 0 {
		sb.WriteString(RenderWarnings(m.warnings, true))
		sb.WriteString("\n")
	}

	switch {
	case m.err != nil:
		sb.WriteString(ErrorStyle.Render(solar.UserMessage(m.err)))
		sb.WriteString("\n")
	case m.hasResult:
		sb.WriteString(RenderOffsetSummary(m.result, m.precision, true, m.width))
	}

	sb.WriteString("\n")
	sb.WriteString(MutedStyle.Render("↑/↓ move • enter calculate • tab change unit • esc quit"))
	return sb.String()
}
