// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package analysis

import (
	"time"

	"github.com/tomtom215/salesreport/internal/table"
)

// CustomerBehaviorStrategy aggregates spend and purchase frequency per
// customer. sale_date is optional.
type CustomerBehaviorStrategy struct{}

func (CustomerBehaviorStrategy) Name() string { return "Customer Behavior Analysis Strategy" }
func (CustomerBehaviorStrategy) Kind() Kind   { return CustomerBehavior }
func (CustomerBehaviorStrategy) RequiredColumns() []string {
	return []string{"customer_id", "total_price"}
}

type customerStats struct {
	spent         float64
	purchases     int
	first, last   time.Time
	hasPurchaseAt bool
}

func (s CustomerBehaviorStrategy) Analyze(t *table.Table) (Metrics, error) {
	if err := requireColumns(t, "customer behavior", s.RequiredColumns()...); err != nil {
		return nil, err
	}

	idIdx := t.ColumnIndex("customer_id")
	priceIdx := t.ColumnIndex("total_price")
	dateIdx := t.ColumnIndex("sale_date")

	customers := newGrouped[customerStats]()
	for i, row := range t.Rows {
		if row[idIdx] == nil {
			continue
		}
		c := customers.get(groupKey(row[idIdx]))

		price, ok, err := numericCell(row[priceIdx], "total_price", i)
		if err != nil {
			return nil, err
		}
		if ok {
			c.spent += price
			c.purchases++
		}

		if dateIdx >= 0 {
			if at, ok := table.AsTime(row[dateIdx]); ok {
				if !c.hasPurchaseAt || at.Before(c.first) {
					c.first = at
				}
				if !c.hasPurchaseAt || at.After(c.last) {
					c.last = at
				}
				c.hasPurchaseAt = true
			}
		}
	}

	spent := customers.floats(func(c *customerStats) float64 { return c.spent })
	counts := customers.floats(func(c *customerStats) float64 { return float64(c.purchases) })
	highValue := quantile(spent, 0.8)
	highFrequency := quantile(counts, 0.8)

	m := Metrics{
		"strategy":                    s.Name(),
		"unique_customers":            customers.size(),
		"avg_customer_lifetime_value": mean(spent),
		"avg_purchases_per_customer":  mean(counts),
		"top_customers_count":         countIf(spent, func(v float64) bool { return v > highValue }),
		"one_time_customers":          countIf(counts, func(v float64) bool { return v == 1 }),
		"repeat_customers":            countIf(counts, func(v float64) bool { return v > 1 }),
	}

	if customers.size() > 0 {
		var hvhf, hvlf, lvhf, lvlf int
		for i := range spent {
			hv := spent[i] >= highValue
			hf := counts[i] >= highFrequency
			switch {
			case hv && hf:
				hvhf++
			case hv:
				hvlf++
			case hf:
				lvhf++
			default:
				lvlf++
			}
		}
		m["customer_segments"] = map[string]any{
			"high_value_high_frequency": hvhf,
			"high_value_low_frequency":  hvlf,
			"low_value_high_frequency":  lvhf,
			"low_value_low_frequency":   lvlf,
		}
	}

	if dateIdx >= 0 {
		var first, last time.Time
		found := false
		for _, c := range customers.items {
			if !c.hasPurchaseAt {
				continue
			}
			if !found || c.first.Before(first) {
				first = c.first
			}
			if !found || c.last.After(last) {
				last = c.last
			}
			found = true
		}
		if found {
			m["first_purchase_date"] = first
			m["last_purchase_date"] = last
		}
	}
	return m, nil
}
