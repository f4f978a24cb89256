package core

import "strings"

// Filter is the storage predicate for record queries. OwnerID is always
// present; every query is scoped to a single owner. Category is an exact
// match, DatePrefix an anchored prefix match against the stored date.
// Clauses combine with AND.
type Filter struct {
	OwnerID    string
	Category   string
	DatePrefix string
}

// NewFilter builds the predicate for a listing request. ok is false when
// neither category nor date was supplied; callers short-circuit to the
// default view instead of querying.
func NewFilter(ownerID, category, date string) (f Filter, ok bool) {
	f = Filter{
		OwnerID:    ownerID,
		Category:   strings.TrimSpace(category),
		DatePrefix: strings.TrimSpace(date),
	}
	return f, f.Category != "" || f.DatePrefix != ""
}

// OwnerFilter matches every record of one owner.
func OwnerFilter(ownerID string) Filter {
	return Filter{OwnerID: ownerID}
}

// Matches reports whether the record satisfies every clause of the filter.
func (f Filter) Matches(r Record) bool {
	if r.OwnerID != f.OwnerID {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.DatePrefix != "" && !strings.HasPrefix(r.Date, f.DatePrefix) {
		return false
	}
	return true
}
