// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package table

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"
)

// UnmarshalJSON restores a table written by json.Marshal. Integral numbers
// come back as int64 and other numbers as float64, matching Normalize; time
// values come back as RFC 3339 strings.
func (t *Table) UnmarshalJSON(data []byte) error {
	var raw struct {
		Columns []string      `json:"columns"`
		Rows    [][]any       `json:"rows"`
		Elapsed time.Duration `json:"elapsed_ns"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	for _, row := range raw.Rows {
		for i, cell := range row {
			n, ok := cell.(json.Number)
			if !ok {
				continue
			}
			if iv, err := n.Int64(); err == nil {
				row[i] = iv
			} else if fv, err := n.Float64(); err == nil {
				row[i] = fv
			}
		}
	}

	*t = *New(raw.Columns, raw.Rows)
	t.Elapsed = raw.Elapsed
	return nil
}
