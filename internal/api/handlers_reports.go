// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package api

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/database"
	"github.com/tomtom215/salesreport/internal/database/query"
	"github.com/tomtom215/salesreport/internal/table"
)

// report runs one named report with its query parameters.
type report struct {
	description string
	run         func(ctx context.Context, h *Handler, p *queryParams) (any, error)
}

var reports = map[string]report{
	"sales-summary": {
		description: "Sales count, revenue and average sale per category",
		run: func(ctx context.Context, h *Handler, _ *queryParams) (any, error) {
			return h.examples.SalesSummary(ctx)
		},
	},
	"category-summary": {
		description: "Category totals rendered by the query director",
		run: func(ctx context.Context, h *Handler, _ *queryParams) (any, error) {
			sql, err := query.NewDirector(nil).SalesSummaryByCategory()
			if err != nil {
				return nil, err
			}
			return h.q.ExecuteQuery(ctx, sql, nil)
		},
	},
	"top-customers": {
		description: "Customers with the highest total spend (limit)",
		run: func(ctx context.Context, h *Handler, p *queryParams) (any, error) {
			limit := p.Limit("limit", query.DefaultTopCustomers)
			if err := p.Err(); err != nil {
				return nil, err
			}
			sql, err := query.NewDirector(nil).TopCustomers(limit)
			if err != nil {
				return nil, err
			}
			return h.q.ExecuteQuery(ctx, sql, nil)
		},
	},
	"monthly-trend": {
		description: "Sales per month of one year (year, default current)",
		run: func(ctx context.Context, h *Handler, p *queryParams) (any, error) {
			year := p.Int("year", 0)
			if err := p.Err(); err != nil {
				return nil, err
			}
			return h.examples.MonthlySalesTrend(ctx, year)
		},
	},
	"sales-performance": {
		description: "Salesperson revenue ranked within each category (start_date, end_date)",
		run: func(ctx context.Context, h *Handler, p *queryParams) (any, error) {
			start, end := p.Date("start_date"), p.Date("end_date")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return h.analytics.SalesPerformance(ctx, start, end)
		},
	},
	"customer-segmentation": {
		description: "RFM scores and segments for recently active customers (months)",
		run: func(ctx context.Context, h *Handler, p *queryParams) (any, error) {
			months := p.Int("months", database.DefaultSegmentationMonths)
			if err := p.Err(); err != nil {
				return nil, err
			}
			return h.analytics.CustomerSegmentation(ctx, months)
		},
	},
	"product-trends": {
		description: "Per-product sales by period with growth and trend labels (category_id, period)",
		run: func(ctx context.Context, h *Handler, p *queryParams) (any, error) {
			categoryID := p.Int64Ptr("category_id")
			period := database.ParsePeriod(p.String("period", string(database.Monthly)))
			if err := p.Err(); err != nil {
				return nil, err
			}
			return h.analytics.ProductTrends(ctx, categoryID, period)
		},
	},
	"dashboard": {
		description: "Daily sales trend and geographic performance (days)",
		run: func(ctx context.Context, h *Handler, p *queryParams) (any, error) {
			days := p.Int("days", database.DefaultDashboardDays)
			if err := p.Err(); err != nil {
				return nil, err
			}
			return h.analytics.Dashboard(ctx, days)
		},
	},
	"category-performance": {
		description: "Products, units and revenue per category",
		run: func(ctx context.Context, h *Handler, _ *queryParams) (any, error) {
			return h.examples.CategoryPerformance(ctx)
		},
	},
	"employee-performance": {
		description: "Sales handled per employee",
		run: func(ctx context.Context, h *Handler, _ *queryParams) (any, error) {
			return h.examples.EmployeePerformance(ctx)
		},
	},
	"customer-analysis": {
		description: "Purchase behaviour of customers active in the last year",
		run: func(ctx context.Context, h *Handler, _ *queryParams) (any, error) {
			return h.examples.CustomerAnalysis(ctx)
		},
	},
	"top-products": {
		description: "Best selling products by revenue (limit)",
		run: func(ctx context.Context, h *Handler, p *queryParams) (any, error) {
			limit := p.Limit("limit", database.DefaultTopProducts)
			if err := p.Err(); err != nil {
				return nil, err
			}
			return h.examples.TopProducts(ctx, limit)
		},
	},
	"purchase-history": {
		description: "Customer purchase history view (customer_id)",
		run: func(ctx context.Context, h *Handler, p *queryParams) (any, error) {
			customerID := p.Int64Ptr("customer_id")
			if err := p.Err(); err != nil {
				return nil, err
			}
			return h.objects.PurchaseHistory(ctx, customerID)
		},
	},
	"sales-report": {
		description: "Sales summary for a window (start_date, end_date, category_id, details)",
		run: func(ctx context.Context, h *Handler, p *queryParams) (any, error) {
			opts := database.ReportOptions{
				Start:          p.Date("start_date"),
				End:            p.Date("end_date"),
				CategoryID:     p.Int64Ptr("category_id"),
				IncludeDetails: p.Bool("details"),
			}
			if err := p.Err(); err != nil {
				return nil, err
			}
			return h.objects.SalesReport(ctx, opts)
		},
	},
}

// ReportNames returns every report name, sorted.
func ReportNames() []string {
	return slices.Sorted(maps.Keys(reports))
}

// ReportCatalog returns every report with its description, sorted by name.
func ReportCatalog() []ReportInfo {
	names := ReportNames()
	out := make([]ReportInfo, len(names))
	for i, name := range names {
		out[i] = ReportInfo{Name: name, Description: reports[name].description}
	}
	return out
}

// RunReport runs the named report with params as its parameters. An unknown
// name wraps apperrors.ErrNotFound.
func (h *Handler) RunReport(ctx context.Context, name string, params url.Values) (any, error) {
	rep, ok := reports[name]
	if !ok {
		return nil, fmt.Errorf("report %q: %w", name, apperrors.ErrNotFound)
	}
	return rep.run(ctx, h, newQueryParams(params))
}

// ReportInfo describes one report.
type ReportInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Reports godoc
// @Summary List reports
// @Tags Reports
// @Produce json
// @Success 200 {object} APIResponse{data=[]ReportInfo}
// @Router /reports [get]
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(ReportCatalog())
}

// Report godoc
// @Summary Run a report
// @Description Runs a named report. Parameters depend on the report; see GET /reports.
// @Tags Reports
// @Produce json
// @Param name path string true "Report name"
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Param category_id query int false "Category filter"
// @Param customer_id query int false "Customer filter"
// @Param limit query int false "Row limit"
// @Param year query int false "Calendar year"
// @Param months query int false "Look-back in months"
// @Param days query int false "Look-back in days"
// @Param period query string false "Trend bucket" Enums(daily, weekly, monthly)
// @Param details query bool false "Include per-product details"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /reports/{name} [get]
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	data, err := h.RunReport(r.Context(), chi.URLParam(r, "name"), r.URL.Query())
	if err != nil {
		rw.Err(err)
		return
	}

	var meta *APIMeta
	if t, ok := data.(*table.Table); ok {
		rows := t.Len()
		meta = &APIMeta{Rows: &rows}
	}
	rw.SuccessWithMeta(data, meta)
}

// LifetimeValue is the /customers/{id}/lifetime-value payload.
type LifetimeValue struct {
	CustomerID    int64   `json:"customer_id"`
	Months        int     `json:"months"`
	LifetimeValue float64 `json:"lifetime_value"`
}

// CustomerLifetimeValue godoc
// @Summary Customer lifetime value
// @Description Total spend of one customer over the last months months. Customers without sales are worth 0.
// @Tags Reports
// @Produce json
// @Param id path int true "Customer ID"
// @Param months query int false "Look-back in months" default(12)
// @Success 200 {object} APIResponse{data=LifetimeValue}
// @Failure 400 {object} APIResponse
// @Router /customers/{id}/lifetime-value [get]
func (h *Handler) CustomerLifetimeValue(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		rw.BadRequest("customer id must be a positive integer")
		return
	}
	p := newQueryParams(r.URL.Query())
	months := p.Int("months", database.DefaultLifetimeMonths)
	if err := p.Err(); err != nil {
		rw.Err(err)
		return
	}
	if months <= 0 {
		months = database.DefaultLifetimeMonths
	}

	value, err := h.objects.CustomerLifetimeValue(r.Context(), id, months)
	if err != nil {
		rw.Err(err)
		return
	}
	rw.Success(LifetimeValue{CustomerID: id, Months: months, LifetimeValue: value})
}

// TableInfo godoc
// @Summary Describe a table
// @Description Column names, types, nullability and defaults of a table.
// @Tags Tables
// @Produce json
// @Param name path string true "Table name"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /tables/{name} [get]
func (h *Handler) TableInfo(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	name := chi.URLParam(r, "name")
	if h.db == nil {
		rw.Err(apperrors.ErrConnectionFailed)
		return
	}
	info, err := h.db.GetTableInfo(r.Context(), name)
	if err != nil {
		rw.Err(err)
		return
	}
	rows := info.Len()
	rw.SuccessWithMeta(info, &APIMeta{Rows: &rows})
}

// Stats godoc
// @Summary Per-route request latency
// @Description Latency percentiles over the most recent requests, busiest route first.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse
// @Router /stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.monitor.Stats())
}
