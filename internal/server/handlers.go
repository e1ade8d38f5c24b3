package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/rshade/netzero/internal/logging"
	"github.com/rshade/netzero/internal/report"
	"github.com/rshade/netzero/internal/solar"
)

// OffsetRequest is the body of POST /api/v1/offset and /api/v1/report/{format}.
// Blank units default to kWh and kg. The grid factor is, in order: an
// explicit positive grid_emission_factor, the named grid_preset, the
// configured default.
type OffsetRequest struct {
	PanelCount         int     `json:"panel_count"`
	EnergyProduced     float64 `json:"energy_produced"`
	EnergyUnit         string  `json:"energy_unit,omitempty"`
	CurrentEmissions   float64 `json:"current_emissions"`
	EmissionsUnit      string  `json:"emissions_unit,omitempty"`
	GridEmissionFactor float64 `json:"grid_emission_factor,omitempty"`
	GridPreset         string  `json:"grid_preset,omitempty"`
}

// OffsetResponse is the body of a successful offset calculation.
type OffsetResponse struct {
	Result        solar.OffsetResult  `json:"result"`
	Lines         []solar.ResultLine  `json:"lines"`
	Chart         solar.ChartData     `json:"chart"`
	Equivalencies []solar.Equivalency `json:"equivalencies,omitempty"`
	Message       string              `json:"message,omitempty"`
}

// PlanRequest is the body of POST /api/v1/plan. Zero cost_per_kwh and
// grid_emission_factor select the configured defaults.
type PlanRequest struct {
	EnergyPerPanel     float64 `json:"energy_per_panel"`
	CostPerPanel       float64 `json:"cost_per_panel"`
	CurrentEmissions   float64 `json:"current_emissions"`
	EmissionsUnit      string  `json:"emissions_unit,omitempty"`
	GridEmissionFactor float64 `json:"grid_emission_factor,omitempty"`
	GridPreset         string  `json:"grid_preset,omitempty"`
	CostPerKWh         float64 `json:"cost_per_kwh,omitempty"`
}

// PlanResponse is the body of a successful plan calculation.
type PlanResponse struct {
	Result solar.PlanResult   `json:"result"`
	Lines  []solar.ResultLine `json:"lines"`
}

// UnitInfo describes one accepted unit.
type UnitInfo struct {
	Name     string  `json:"name"`
	ToBase   float64 `json:"to_base"`
	BaseUnit string  `json:"base_unit"`
}

// UnitsResponse is the body of GET /api/v1/units.
type UnitsResponse struct {
	Energy    []UnitInfo `json:"energy"`
	Emissions []UnitInfo `json:"emissions"`
}

// GridFactorInfo is one grid factor preset.
type GridFactorInfo struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) offset(w http.ResponseWriter, r *http.Request) {
	var req OffsetRequest
	if !s.decode(w, r, &req) {
		return
	}
	in, res, err := s.computeOffset(req)
	s.metrics.calculation("offset", err)
	if err != nil {
		logging.FromContext(r.Context()).Debug().Err(err).Msg("offset rejected")
		writeCalcError(w, err)
		return
	}
	logging.FromContext(r.Context()).Debug().
		Int("panels", in.PanelCount).
		Float64("carbon_offset", res.CarbonOffset).
		Bool("net_zero", res.NetZeroReached).
		Msg("offset calculated")

	resp := OffsetResponse{
		Result:        res,
		Lines:         solar.OffsetLines(res, s.cfg.Output.Precision),
		Chart:         solar.ChartFor(res),
		Equivalencies: solar.Equivalencies(res.CarbonOffset),
	}
	if res.NetZeroReached {
		resp.Message = solar.NetZeroReachedTitle
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.computePlan(req)
	s.metrics.calculation("plan", err)
	if err != nil {
		logging.FromContext(r.Context()).Debug().Err(err).Msg("plan rejected")
		writeCalcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PlanResponse{
		Result: res,
		Lines:  solar.PlanLines(res, s.cfg.Output.Precision),
	})
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
		return
	}
	var req OffsetRequest
	if !s.decode(w, r, &req) {
		return
	}
	in, res, err := s.computeOffset(req)
	s.metrics.calculation("report", err)
	if err != nil {
		writeCalcError(w, err)
		return
	}

	doc := report.NewDocument(s.reportMeta(), in, res, s.cfg.Output.Precision)
	var buf bytes.Buffer
	if err = report.Write(&buf, format, doc); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Str("format", string(format)).Msg("report failed")
		writeError(w, http.StatusInternalServerError, codeInternal, "report generation failed")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName(format)))
	w.Header().Set("X-Document-ID", doc.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) units(w http.ResponseWriter, _ *http.Request) {
	var resp UnitsResponse
	for _, u := range solar.EnergyUnits {
		f, _ := solar.NormalizeEnergy(1, u)
		resp.Energy = append(resp.Energy, UnitInfo{Name: u.String(), ToBase: f, BaseUnit: solar.EnergyKWh.String()})
	}
	for _, u := range solar.EmissionsUnits {
		f, _ := solar.NormalizeEmissions(1, u)
		resp.Emissions = append(resp.Emissions, UnitInfo{Name: u.String(), ToBase: f, BaseUnit: solar.EmissionsKg.String()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) gridFactors(w http.ResponseWriter, _ *http.Request) {
	names := solar.GridFactorNames()
	out := make([]GridFactorInfo, 0, len(names))
	for _, n := range names {
		out = append(out, GridFactorInfo{Name: n, Factor: solar.GridFactorPresets[n]})
	}
	writeJSON(w, http.StatusOK, out)
}

// decode reads a JSON body, rejecting unknown fields. It writes the 400
// response itself and reports whether decoding succeeded.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := "invalid request payload"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, msg+": "+err.Error())
		return false
	}
	return true
}

func (s *Server) gridFactor(explicit float64, preset string) (float64, error) {
	if explicit != 0 {
		return explicit, nil
	}
	if preset != "" {
		return solar.GridFactor(preset)
	}
	return s.cfg.GridFactor()
}

func (s *Server) computeOffset(req OffsetRequest) (solar.OffsetInput, solar.OffsetResult, error) {
	in := solar.OffsetInput{
		PanelCount:       req.PanelCount,
		EnergyProduced:   req.EnergyProduced,
		CurrentEmissions: req.CurrentEmissions,
		EnergyUnit:       solar.EnergyKWh,
		EmissionsUnit:    solar.EmissionsKg,
	}
	var err error
	if req.EnergyUnit != "" {
		if in.EnergyUnit, err = solar.ParseEnergyUnit(req.EnergyUnit); err != nil {
			return in, solar.OffsetResult{}, err
		}
	}
	if req.EmissionsUnit != "" {
		if in.EmissionsUnit, err = solar.ParseEmissionsUnit(req.EmissionsUnit); err != nil {
			return in, solar.OffsetResult{}, err
		}
	}
	if in.GridEmissionFactor, err = s.gridFactor(req.GridEmissionFactor, req.GridPreset); err != nil {
		return in, solar.OffsetResult{}, err
	}
	res, err := solar.ComputeOffset(in)
	return in, res, err
}

func (s *Server) computePlan(req PlanRequest) (solar.PlanResult, error) {
	in := solar.PlanInput{
		EnergyPerPanel:   req.EnergyPerPanel,
		CostPerPanel:     req.CostPerPanel,
		CurrentEmissions: req.CurrentEmissions,
		EmissionsUnit:    solar.EmissionsKg,
		CostPerKWh:       req.CostPerKWh,
	}
	if in.CostPerKWh == 0 {
		in.CostPerKWh = s.cfg.Calculator.CostPerKWh
	}
	var err error
	if req.EmissionsUnit != "" {
		if in.EmissionsUnit, err = solar.ParseEmissionsUnit(req.EmissionsUnit); err != nil {
			return solar.PlanResult{}, err
		}
	}
	if in.GridEmissionFactor, err = s.gridFactor(req.GridEmissionFactor, req.GridPreset); err != nil {
		return solar.PlanResult{}, err
	}
	return solar.ComputePlan(in)
}
