// Copyright 2025 S&P Global Commodity Insights

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spgci

import (
	"strconv"
	"strings"

	"github.com/spgci/spgci-go/dates"
)

// Grammar selects the filter-expression syntax of the target API family.
type Grammar int

// Values of Grammar.
const (
	// Core is the grammar of most endpoints: `field: "value"`, lists as
	// `field in ("a", "b")`, symbolic comparison operators.
	Core Grammar = iota
	// OData is the grammar of the odata endpoints: `field eq 'value'`,
	// word comparison operators, dates unquoted in equality.
	OData
)

// Value is a typed filter operand. The fixed set of implementations — String,
// Int, Float, Bool, Date and Time — enumerates everything the filter grammar
// can express; other Go types have no rendering and cannot appear in a
// filter.
type Value interface {
	// render returns the operand in the grammar's syntax, and whether the
	// value produces a clause at all. Zero values are omitted, except Bool
	// which is always rendered.
	render(g Grammar, inList bool) (string, bool)
}

// String is a string-valued filter operand; the empty string is omitted.
type String string

func (v String) render(g Grammar, inList bool) (string, bool) {
	if v == "" {
		return "", false
	}
	if g == OData {
		return "'" + string(v) + "'", true
	}
	return `"` + string(v) + `"`, true
}

// Int is an integer filter operand; zero is omitted.
type Int int

func (v Int) render(g Grammar, inList bool) (string, bool) {
	if v == 0 {
		return "", false
	}
	return strconv.Itoa(int(v)), true
}

// Float is a floating-point filter operand; zero is omitted.
type Float float64

func (v Float) render(g Grammar, inList bool) (string, bool) {
	if v == 0 {
		return "", false
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 64), true
}

// Bool is a boolean filter operand; unlike the other operand types it always
// renders, since false is a meaningful filter value.
type Bool bool

func (v Bool) render(g Grammar, inList bool) (string, bool) {
	return strconv.FormatBool(bool(v)), true
}

// Date is a calendar-date filter operand; the zero date is omitted.
type Date dates.Date

func (v Date) render(g Grammar, inList bool) (string, bool) {
	d := dates.Date(v)
	if d.IsZero() {
		return "", false
	}
	if g == OData {
		if inList {
			return "'" + d.String() + "'", true
		}
		return d.String(), true
	}
	return `"` + d.String() + `"`, true
}

// Time is a timestamp filter operand; the zero time is omitted.
type Time dates.Time

func (v Time) render(g Grammar, inList bool) (string, bool) {
	t := dates.Time(v)
	if t.IsZero() {
		return "", false
	}
	if g == OData {
		if inList {
			return "'" + t.String() + "'", true
		}
		return t.String(), true
	}
	return `"` + t.String() + `"`, true
}

// Strings converts a list of strings into filter operands.
func Strings(vs ...string) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = String(v)
	}
	return out
}

// Ints converts a list of integers into filter operands.
func Ints(vs ...int) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Int(v)
	}
	return out
}

// Floats converts a list of floats into filter operands.
func Floats(vs ...float64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Float(v)
	}
	return out
}

// Dates converts a list of dates into filter operands.
func Dates(vs ...dates.Date) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Date(v)
	}
	return out
}

// Times converts a list of timestamps into filter operands.
func Times(vs ...dates.Time) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Time(v)
	}
	return out
}

type clauseOp int

const (
	opEq clauseOp = iota
	opGt
	opGe
	opLt
	opLe
)

func (op clauseOp) symbol(g Grammar) string {
	if g == OData {
		switch op {
		case opEq:
			return "eq"
		case opGt:
			return "gt"
		case opGe:
			return "ge"
		case opLt:
			return "lt"
		case opLe:
			return "le"
		}
	}
	switch op {
	case opGt:
		return ">"
	case opGe:
		return ">="
	case opLt:
		return "<"
	case opLe:
		return "<="
	}
	return ""
}

type clause struct {
	op     clauseOp
	field  string
	values []Value
}

// Query builds a filter expression from typed clauses. All modifier methods
// are copy-on-write: they return a modified copy, leaving the original
// intact, so partially built queries can be shared and extended
// independently. Clauses whose values all render empty are dropped from the
// output.
type Query struct {
	grammar Grammar
	clauses []clause
	extra   string
}

// NewQuery creates an empty filter in the Core grammar.
func NewQuery() Query { return Query{grammar: Core} }

// NewODataQuery creates an empty filter in the OData grammar.
func NewODataQuery() Query { return Query{grammar: OData} }

// Copy returns a deep copy of the query.
func (q Query) Copy() Query {
	q2 := q
	q2.clauses = make([]clause, len(q.clauses))
	copy(q2.clauses, q.clauses)
	return q2
}

func (q Query) withClause(op clauseOp, field string, values []Value) Query {
	q2 := q.Copy()
	q2.clauses = append(q2.clauses, clause{op: op, field: field, values: values})
	return q2
}

// Equal adds an equality clause.
func (q Query) Equal(field string, v Value) Query {
	return q.withClause(opEq, field, []Value{v})
}

// In adds a set-membership clause; a single-element list renders as plain
// equality.
func (q Query) In(field string, vs ...Value) Query {
	return q.withClause(opEq, field, vs)
}

// Gt adds a strict greater-than clause.
func (q Query) Gt(field string, v Value) Query {
	return q.withClause(opGt, field, []Value{v})
}

// Gte adds a greater-than-or-equal clause.
func (q Query) Gte(field string, v Value) Query {
	return q.withClause(opGe, field, []Value{v})
}

// Lt adds a strict less-than clause.
func (q Query) Lt(field string, v Value) Query {
	return q.withClause(opLt, field, []Value{v})
}

// Lte adds a less-than-or-equal clause.
func (q Query) Lte(field string, v Value) Query {
	return q.withClause(opLe, field, []Value{v})
}

// Extra appends a handcrafted filter expression verbatim, AND-joined with the
// typed clauses.
func (q Query) Extra(exp string) Query {
	q2 := q.Copy()
	q2.extra = exp
	return q2
}

// Empty checks whether the query renders to an empty expression.
func (q Query) Empty() bool { return q.String() == "" }

func (c clause) render(g Grammar) (string, bool) {
	var rendered []string
	for _, v := range c.values {
		s, ok := v.render(g, len(c.values) > 1)
		if !ok {
			continue
		}
		rendered = append(rendered, s)
	}
	if len(rendered) == 0 {
		return "", false
	}
	if c.op == opEq {
		if len(rendered) > 1 {
			return c.field + " in (" + strings.Join(rendered, ",") + ")", true
		}
		if g == OData {
			return c.field + " eq " + rendered[0], true
		}
		return c.field + ": " + rendered[0], true
	}
	return c.field + " " + c.op.symbol(g) + " " + rendered[0], true
}

// String renders the query in its grammar.
func (q Query) String() string {
	var parts []string
	for _, c := range q.clauses {
		if s, ok := c.render(q.grammar); ok {
			parts = append(parts, s)
		}
	}
	if q.extra != "" {
		if len(parts) == 0 {
			return q.extra
		}
		return strings.Join(parts, " AND ") + " AND (" + q.extra + ")"
	}
	return strings.Join(parts, " AND ")
}
