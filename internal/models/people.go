// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package models

import "time"

// Customer is a buyer.
type Customer struct {
	CustomerID    *int64  `json:"customer_id"`
	FirstName     *string `json:"first_name" validate:"required"`
	MiddleInitial *string `json:"middle_initial" validate:"omitempty,max=5"`
	LastName      *string `json:"last_name" validate:"required"`
	CityID        *int64  `json:"city_id"`
	Address       *string `json:"address"`

	extra fields
}

// CustomerFromMap builds a Customer from storage or display keys.
func CustomerFromMap(data map[string]any) *Customer {
	c := &Customer{}
	d := newDecoder(data, &c.extra)
	c.CustomerID = d.idField("customer_id", "CustomerID")
	c.FirstName = d.stringField("first_name", "FirstName")
	c.MiddleInitial = d.stringField("middle_initial", "MiddleInitial")
	c.LastName = d.stringField("last_name", "LastName")
	c.CityID = d.idField("city_id", "CityID")
	c.Address = d.stringField("address", "Address")
	return c
}

// CustomerFromRow builds a Customer from one result row.
func CustomerFromRow(columns []string, row []any) *Customer {
	return CustomerFromMap(rowMap(columns, row))
}

// FullName joins first and last name, skipping unset parts.
func (c *Customer) FullName() string {
	return joinName(c.FirstName, c.LastName)
}

func (c *Customer) Validate() error { return validate(c, c.extra) }

func (c *Customer) TableName() string { return "customers" }

func (c *Customer) ToMap() map[string]any {
	return c.extra.overlay(map[string]any{
		"customer_id":    deref(c.CustomerID),
		"first_name":     deref(c.FirstName),
		"middle_initial": deref(c.MiddleInitial),
		"last_name":      deref(c.LastName),
		"city_id":        deref(c.CityID),
		"address":        deref(c.Address),
	})
}

// Employee is a sales person.
type Employee struct {
	EmployeeID    *int64     `json:"employee_id"`
	FirstName     *string    `json:"first_name" validate:"required"`
	MiddleInitial *string    `json:"middle_initial" validate:"omitempty,max=5"`
	LastName      *string    `json:"last_name" validate:"required"`
	BirthDate     *time.Time `json:"birth_date"`
	Gender        *string    `json:"gender" validate:"omitempty,oneof=M F"`
	CityID        *int64     `json:"city_id"`
	HireDate      *time.Time `json:"hire_date"`

	extra fields
}

// EmployeeFromMap builds an Employee from storage or display keys.
func EmployeeFromMap(data map[string]any) *Employee {
	e := &Employee{}
	d := newDecoder(data, &e.extra)
	e.EmployeeID = d.idField("employee_id", "EmployeeID")
	e.FirstName = d.stringField("first_name", "FirstName")
	e.MiddleInitial = d.stringField("middle_initial", "MiddleInitial")
	e.LastName = d.stringField("last_name", "LastName")
	e.BirthDate = d.timeField("birth_date", "BirthDate")
	e.Gender = d.stringField("gender", "Gender")
	e.CityID = d.idField("city_id", "CityID")
	e.HireDate = d.timeField("hire_date", "HireDate")
	return e
}

// EmployeeFromRow builds an Employee from one result row.
func EmployeeFromRow(columns []string, row []any) *Employee {
	return EmployeeFromMap(rowMap(columns, row))
}

func (e *Employee) FullName() string {
	return joinName(e.FirstName, e.LastName)
}

func (e *Employee) Validate() error { return validate(e, e.extra) }

func (e *Employee) TableName() string { return "employees" }

func (e *Employee) ToMap() map[string]any {
	return e.extra.overlay(map[string]any{
		"employee_id":    deref(e.EmployeeID),
		"first_name":     deref(e.FirstName),
		"middle_initial": deref(e.MiddleInitial),
		"last_name":      deref(e.LastName),
		"birth_date":     deref(e.BirthDate),
		"gender":         deref(e.Gender),
		"city_id":        deref(e.CityID),
		"hire_date":      deref(e.HireDate),
	})
}

func joinName(first, last *string) string {
	switch {
	case first != nil && last != nil:
		return *first + " " + *last
	case first != nil:
		return *first
	case last != nil:
		return *last
	}
	return ""
}
