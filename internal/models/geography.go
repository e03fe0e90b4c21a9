// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package models

// Country is a country with its two-letter code.
type Country struct {
	CountryID   *int64  `json:"country_id"`
	CountryName *string `json:"country_name" validate:"required"`
	CountryCode *string `json:"country_code" validate:"required,len=2"`

	extra fields
}

// CountryFromMap builds a Country from storage or display keys.
func CountryFromMap(data map[string]any) *Country {
	c := &Country{}
	d := newDecoder(data, &c.extra)
	c.CountryID = d.idField("country_id", "CountryID")
	c.CountryName = d.stringField("country_name", "CountryName")
	c.CountryCode = d.stringField("country_code", "CountryCode")
	return c
}

// CountryFromRow builds a Country from one result row.
func CountryFromRow(columns []string, row []any) *Country {
	return CountryFromMap(rowMap(columns, row))
}

func (c *Country) Validate() error { return validate(c, c.extra) }

func (c *Country) TableName() string { return "countries" }

func (c *Country) ToMap() map[string]any {
	return c.extra.overlay(map[string]any{
		"country_id":   deref(c.CountryID),
		"country_name": deref(c.CountryName),
		"country_code": deref(c.CountryCode),
	})
}

// City belongs to a Country.
type City struct {
	CityID    *int64  `json:"city_id"`
	CityName  *string `json:"city_name" validate:"required"`
	ZipCode   *string `json:"zip_code"`
	CountryID *int64  `json:"country_id"`

	extra fields
}

// CityFromMap builds a City from storage or display keys.
func CityFromMap(data map[string]any) *City {
	c := &City{}
	d := newDecoder(data, &c.extra)
	c.CityID = d.idField("city_id", "CityID")
	c.CityName = d.stringField("city_name", "CityName")
	c.ZipCode = d.stringField("zip_code", "Zipcode")
	c.CountryID = d.idField("country_id", "CountryID")
	return c
}

// CityFromRow builds a City from one result row.
func CityFromRow(columns []string, row []any) *City {
	return CityFromMap(rowMap(columns, row))
}

func (c *City) Validate() error { return validate(c, c.extra) }

func (c *City) TableName() string { return "cities" }

func (c *City) ToMap() map[string]any {
	return c.extra.overlay(map[string]any{
		"city_id":    deref(c.CityID),
		"city_name":  deref(c.CityName),
		"zip_code":   deref(c.ZipCode),
		"country_id": deref(c.CountryID),
	})
}
