package document

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultLimit is the page size used when the client omits or mangles the
// limit parameter.
const DefaultLimit = 10

// SearchParams are the raw search inputs accepted by the list endpoint.
// Empty fields are ignored; all empty means match-all.
type SearchParams struct {
	Title     string
	Role      string
	CreatedAt string
}

// Filter translates the search parameters into a Mongo filter document.
// Title is a case-insensitive substring match, role an exact match, and
// createdAt a same-day range when the value parses as a date.
func (p SearchParams) Filter() bson.M {
	q := bson.M{}
	if p.Title != "" {
		q["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(p.Title), Options: "i"}
	}
	if p.Role != "" {
		q["role"] = p.Role
	}
	if day, ok := parseDay(p.CreatedAt); ok {
		q["createdAt"] = bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}
	}
	return q
}

// Matches reports whether a document satisfies the search parameters. This is
// the in-memory counterpart of Filter and must stay in agreement with it.
func (p SearchParams) Matches(d *Document) bool {
	if p.Title != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(p.Title)) {
		return false
	}
	if p.Role != "" && d.Role != p.Role {
		return false
	}
	if day, ok := parseDay(p.CreatedAt); ok {
		if d.CreatedAt.Before(day) || !d.CreatedAt.Before(day.Add(24*time.Hour)) {
			return false
		}
	}
	return true
}

// parseDay accepts a date (2006-01-02) or a full RFC3339 timestamp and
// returns the start of that UTC day.
func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(24 * time.Hour), true
		}
	}
	return time.Time{}, false
}

// Pagination carries the window applied to list queries.
type Pagination struct {
	Limit  int64
	Offset int64
}

// ParsePagination parses limit/after query values. Absent, non-numeric,
// negative or zero limits fall back to the defaults: limit 10, offset 0.
// Zero is not a request for an unbounded page here; only the path-limit
// lookups treat 0 as unlimited.
func ParsePagination(limit, after string) Pagination {
	p := Pagination{Limit: DefaultLimit}
	if n, err := strconv.ParseInt(limit, 10, 64); err == nil && n > 0 {
		p.Limit = n
	}
	if n, err := strconv.ParseInt(after, 10, 64); err == nil && n >= 0 {
		p.Offset = n
	}
	return p
}

// ParseLimit parses a bare path limit for the by-role/by-user lookups.
// Invalid or absent values mean "no limit" rather than an error.
func ParseLimit(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(strings.Trim(s, "/")), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
