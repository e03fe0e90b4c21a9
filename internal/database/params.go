// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package database

import (
	"strings"
	"time"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/config"
)

// BindNamed rewrites :name placeholders to the dialect's bind markers and
// returns the ordered argument list.
//
// With numbered markers a repeated name reuses its first number:
//
//	SELECT * FROM sales WHERE customer_id = :id OR sales_person_id = :id
//	SELECT * FROM sales WHERE customer_id = $1 OR sales_person_id = $1
//
// With ? markers the value is repeated instead. Text inside quotes and
// comments and the :: cast operator are left alone. A placeholder missing
// from params is a precondition error; unused params are ignored.
func BindNamed(d Dialect, q string, params map[string]any) (string, []any, error) {
	if !strings.Contains(q, ":") {
		return q, nil, nil
	}

	var (
		b        strings.Builder
		args     []any
		numbers  = make(map[string]int)
		s        = newSQLScanner(q)
		rewrites = 0
	)
	b.Grow(len(q))

	for s.next() {
		if s.inText || s.c != ':' {
			b.WriteByte(s.c)
			continue
		}
		if s.peek() == ':' {
			b.WriteString("::")
			s.skip(1)
			continue
		}
		name := s.identAfter()
		if name == "" {
			b.WriteByte(s.c)
			continue
		}
		v, ok := params[name]
		if !ok {
			return "", nil, apperrors.Preconditionf("missing value for query parameter :%s", name)
		}
		s.skip(len(name))
		rewrites++

		if d.numbered() {
			n, seen := numbers[name]
			if !seen {
				args = append(args, bindValue(v))
				n = len(args)
				numbers[name] = n
			}
			b.WriteString(d.Placeholder(n))
			continue
		}
		args = append(args, bindValue(v))
		b.WriteByte('?')
	}

	if rewrites == 0 {
		return q, nil, nil
	}
	return b.String(), args, nil
}

// Rebind rewrites positional ? markers for dialects that number their
// parameters. Other dialects get q back unchanged.
func Rebind(d Dialect, q string) string {
	if d.Name() != config.DriverPostgres || !strings.Contains(q, "?") {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	s := newSQLScanner(q)
	for s.next() {
		if !s.inText && s.c == '?' {
			n++
			b.WriteString(d.Placeholder(n))
			continue
		}
		b.WriteByte(s.c)
	}
	return b.String()
}

// bindValue normalizes values the drivers disagree on. Times are bound in UTC.
func bindValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.UTC()
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.UTC()
	}
	return v
}

// sqlScanner walks a statement byte by byte and tracks whether the current
// byte is inside a quoted string, a quoted identifier or a comment.
type sqlScanner struct {
	q      string
	i      int
	c      byte
	inText bool

	quote        byte // active quote character, 0 when none
	lineComment  bool
	blockComment bool
}

func newSQLScanner(q string) *sqlScanner {
	return &sqlScanner{q: q, i: -1}
}

func (s *sqlScanner) next() bool {
	s.i++
	if s.i >= len(s.q) {
		return false
	}
	s.c = s.q[s.i]

	switch {
	case s.quote != 0:
		s.inText = true
		if s.c == s.quote {
			s.quote = 0
		}
	case s.lineComment:
		s.inText = true
		if s.c == '\n' {
			s.lineComment = false
		}
	case s.blockComment:
		s.inText = true
		if s.c == '/' && s.i > 0 && s.q[s.i-1] == '*' {
			s.blockComment = false
		}
	case s.c == '\'' || s.c == '"' || s.c == '`':
		s.inText = true
		s.quote = s.c
	case s.c == '-' && s.peek() == '-':
		s.inText = true
		s.lineComment = true
	case s.c == '/' && s.peek() == '*':
		s.inText = true
		s.blockComment = true
	default:
		s.inText = false
	}
	return true
}

func (s *sqlScanner) peek() byte {
	if s.i+1 < len(s.q) {
		return s.q[s.i+1]
	}
	return 0
}

// skip advances past n bytes that the caller has already consumed. Skipped
// bytes are never inside text.
func (s *sqlScanner) skip(n int) {
	s.i += n
}

// identAfter returns the identifier starting right after the current byte.
func (s *sqlScanner) identAfter() string {
	start := s.i + 1
	end := start
	for end < len(s.q) && isIdentByte(s.q[end], end == start) {
		end++
	}
	return s.q[start:end]
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}
