// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/salesreport/internal/analysis"
	"github.com/tomtom215/salesreport/internal/database/query"
	"github.com/tomtom215/salesreport/internal/table"
)

// StrategyInfo describes one registered strategy.
type StrategyInfo struct {
	Key             string   `json:"key"`
	Name            string   `json:"name"`
	RequiredColumns []string `json:"required_columns"`
}

// Strategies godoc
// @Summary List analysis strategies
// @Tags Analysis
// @Produce json
// @Success 200 {object} APIResponse{data=[]StrategyInfo}
// @Router /strategies [get]
func (h *Handler) Strategies(w http.ResponseWriter, r *http.Request) {
	keys := h.factory.AvailableStrategies()
	out := make([]StrategyInfo, 0, len(keys))
	for _, key := range keys {
		s, err := h.factory.CreateStrategy(key)
		if err != nil {
			continue
		}
		out = append(out, StrategyInfo{Key: key, Name: s.Name(), RequiredColumns: s.RequiredColumns()})
	}
	NewResponseWriter(w, r).Success(out)
}

// Analyze godoc
// @Summary Run one analysis strategy
// @Description Loads every row of the table (default sales) and runs the strategy over it.
// @Tags Analysis
// @Produce json
// @Param strategy path string true "Strategy key" Enums(revenue, quantity, customer_behavior, product_performance)
// @Param table query string false "Table to analyze" default(sales)
// @Success 200 {object} APIResponse{data=analysis.Metrics}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /analysis/{strategy} [get]
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	strategy, err := h.factory.CreateStrategy(chi.URLParam(r, "strategy"))
	if err != nil {
		rw.Err(err)
		return
	}

	tableName := newQueryParams(r.URL.Query()).String("table", h.defaultTable())
	m, err := analysis.NewContext(strategy, h.q).PerformAnalysisOn(r.Context(), tableName)
	if err != nil {
		rw.Err(err)
		return
	}
	rw.Success(m)
}

// Compare godoc
// @Summary Compare analysis strategies
// @Description Runs several strategies over the same rows. A strategy that fails reports {"error": message} without failing the request.
// @Tags Analysis
// @Produce json
// @Param strategies query string false "Comma separated strategy keys; all when empty"
// @Param table query string false "Table to analyze" default(sales)
// @Success 200 {object} APIResponse{data=map[string]analysis.Metrics}
// @Failure 404 {object} APIResponse
// @Router /analysis/compare [get]
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	params := newQueryParams(r.URL.Query())

	keys := params.List("strategies")
	if len(keys) == 0 {
		keys = h.factory.AvailableStrategies()
	}
	strategies, err := h.factory.CreateStrategies(keys...)
	if err != nil {
		rw.Err(err)
		return
	}

	data, err := h.loadTable(r, params.String("table", h.defaultTable()))
	if err != nil {
		rw.Err(err)
		return
	}
	results, err := analysis.NewContext(nil, h.q).CompareStrategies(r.Context(), strategies, data)
	if err != nil {
		rw.Err(err)
		return
	}
	rw.Success(results)
}

func (h *Handler) defaultTable() string {
	if h.config != nil && h.config.Analysis.DefaultTable != "" {
		return h.config.Analysis.DefaultTable
	}
	return analysis.DefaultTable
}

// loadTable reads every row of name after checking it is a plain identifier.
func (h *Handler) loadTable(r *http.Request, name string) (*table.Table, error) {
	if err := query.CheckIdentifier(name); err != nil {
		return nil, err
	}
	return h.q.ExecuteQuery(r.Context(), "SELECT * FROM "+name, nil)
}
