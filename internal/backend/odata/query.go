// Package odata builds the $-prefixed query strings the backend's OData
// endpoints accept.
package odata

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Query struct {
	filters []string
	expand  []string
	orderBy []string
	selects []string
	skip    *int
	top     *int
	count   bool
}

func New() *Query {
	return &Query{}
}

// Literal renders v as an OData literal.
func Literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return Literal(x.String())
	default:
		return fmt.Sprint(x)
	}
}

// Filter adds a raw filter expression. Multiple filters are joined with "and".
func (q *Query) Filter(expr string) *Query {
	if expr != "" {
		q.filters = append(q.filters, expr)
	}
	return q
}

func (q *Query) compare(field, op string, v any) *Query {
	return q.Filter(fmt.Sprintf("%s %s %s", field, op, Literal(v)))
}

func (q *Query) Eq(field string, v any) *Query { return q.compare(field, "eq", v) }
func (q *Query) Ne(field string, v any) *Query { return q.compare(field, "ne", v) }
func (q *Query) Ge(field string, v any) *Query { return q.compare(field, "ge", v) }
func (q *Query) Le(field string, v any) *Query { return q.compare(field, "le", v) }

// AnyOf matches field against each value, joined with "or". No values adds
// no filter.
func (q *Query) AnyOf(field string, vs ...any) *Query {
	terms := make([]string, 0, len(vs))
	for _, v := range vs {
		terms = append(terms, fmt.Sprintf("%s eq %s", field, Literal(v)))
	}
	return q.Filter(strings.Join(terms, " or "))
}

func (q *Query) Contains(field, s string) *Query {
	return q.Filter(fmt.Sprintf("contains(%s, %s)", field, Literal(s)))
}

func (q *Query) Expand(fields ...string) *Query {
	q.expand = append(q.expand, fields...)
	return q
}

func (q *Query) Select(fields ...string) *Query {
	q.selects = append(q.selects, fields...)
	return q
}

func (q *Query) OrderBy(field string, desc bool) *Query {
	if desc {
		field += " desc"
	}
	q.orderBy = append(q.orderBy, field)
	return q
}

func (q *Query) Skip(n int) *Query {
	q.skip = &n
	return q
}

func (q *Query) Top(n int) *Query {
	q.top = &n
	return q
}

// Page sets $skip/$top for a 1-based page number.
func (q *Query) Page(page, size int) *Query {
	if page < 1 {
		page = 1
	}
	return q.Skip((page - 1) * size).Top(size)
}

func (q *Query) Count() *Query {
	q.count = true
	return q
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Encode returns the query string without a leading "?". Parameter order
// is fixed so the output is stable.
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}

	var parts []string
	add := func(key, value string) {
		parts = append(parts, key+"="+escape(value))
	}

	if len(q.filters) == 1 {
		add("$filter", q.filters[0])
	} else if len(q.filters) > 1 {
		wrapped := make([]string, len(q.filters))
		for i, f := range q.filters {
			wrapped[i] = "(" + f + ")"
		}
		add("$filter", strings.Join(wrapped, " and "))
	}
	if len(q.expand) > 0 {
		add("$expand", strings.Join(q.expand, ","))
	}
	if len(q.selects) > 0 {
		add("$select", strings.Join(q.selects, ","))
	}
	if len(q.orderBy) > 0 {
		add("$orderby", strings.Join(q.orderBy, ","))
	}
	if q.skip != nil {
		add("$skip", strconv.Itoa(*q.skip))
	}
	if q.top != nil {
		add("$top", strconv.Itoa(*q.top))
	}
	if q.count {
		add("$count", "true")
	}

	return strings.Join(parts, "&")
}

func (q *Query) String() string {
	return q.Encode()
}
