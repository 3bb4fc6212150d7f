package apiclient

import (
	"net/url"
	"strconv"
	"strings"
)

// Filter is one query parameter.
type Filter struct {
	Key   string
	Value string
}

// Filters is an ordered set of query parameters. Order is preserved in the
// encoded query string.
type Filters []Filter

// Add appends key=value and returns the extended list.
func (f Filters) Add(key, value string) Filters {
	return append(f, Filter{Key: key, Value: value})
}

// encode renders f as a query string without the leading "?". When
// skipEmpty is set, parameters with an empty value are left out.
func (f Filters) encode(skipEmpty bool) string {
	var b strings.Builder
	for _, p := range f {
		if skipEmpty && p.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// ResourceQuery holds the listing filters the resources endpoint accepts.
// Zero values are omitted.
type ResourceQuery struct {
	Status     string
	Subject    string
	GradeLevel string
	Page       int
	PageSize   int
	Sort       string
}

// Filters converts q into query parameters in a fixed order.
func (q ResourceQuery) Filters() Filters {
	f := Filters{
		{Key: "status", Value: q.Status},
		{Key: "subject", Value: q.Subject},
		{Key: "grade_level", Value: q.GradeLevel},
		{Key: "page", Value: itoa(q.Page)},
		{Key: "page_size", Value: itoa(q.PageSize)},
		{Key: "sort", Value: q.Sort},
	}
	return f
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// withQuery appends "?qs" to path when qs is non-empty.
func withQuery(path, qs string) string {
	if qs == "" {
		return path
	}
	return path + "?" + qs
}

// segment escapes one interpolated path identifier.
func segment(id string) string {
	return url.PathEscape(id)
}
