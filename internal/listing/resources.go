package listing

import (
	"strconv"

	"github.com/chakrahealing/admin_api/internal/models"
)

// Order table tabs.
const (
	TabAll       = "all"
	TabCompleted = "completed"
	TabInProcess = "in_process"
	TabCancelled = "cancelled"
	TabDraft     = "draft"
)

// ValidOrderTab reports whether tab is one of the order table tabs.
func ValidOrderTab(tab string) bool {
	switch tab {
	case "", TabAll, TabCompleted, TabInProcess, TabCancelled, TabDraft:
		return true
	}
	return false
}

// OrderTabMatch decides which tab an order belongs to. Draft holds unpaid
// orders only. All other tabs hold paid orders; the shipping tabs also
// require the normalized shipping status to equal the tab.
func OrderTabMatch(tab string, o *models.Order) bool {
	switch tab {
	case "", TabAll:
		return o.IsPaid()
	case TabDraft:
		return !o.IsPaid()
	default:
		return o.IsPaid() && string(o.NormalizedShipping()) == tab
	}
}

// OrderMatch returns the predicate used by the orders table.
func OrderMatch(q Query) func(models.Order) bool {
	m := NewMatcher(q.Search)
	return func(o models.Order) bool {
		if !OrderTabMatch(q.Tab, &o) {
			return false
		}
		if m.Empty() {
			return true
		}
		if m.Match(o.DisplayID(), strconv.FormatInt(o.ID, 10)) {
			return true
		}
		if m.MatchPtr(o.Email, o.ContactEmail, o.Phone, o.ContactPhone) {
			return true
		}
		if o.Profile != nil && m.MatchPtr(o.Profile.FullName, o.Profile.Email, o.Profile.Phone) {
			return true
		}
		for _, it := range o.Items {
			if m.Match(it.NameSnapshot) {
				return true
			}
		}
		return false
	}
}

// BookingMatch returns the predicate used by the bookings table.
func BookingMatch(q Query) func(models.Booking) bool {
	m := NewMatcher(q.Search)
	return func(b models.Booking) bool {
		if !EqualFoldOrAll(q.Status, b.Status) {
			return false
		}
		if !EqualFoldOrAll(q.PaymentStatus, b.PaymentStatus) {
			return false
		}
		if m.Empty() {
			return true
		}
		if m.Match(b.DisplayID(), strconv.FormatInt(b.ID, 10), b.ContactName) {
			return true
		}
		if m.MatchPtr(b.ContactEmail, b.ContactPhone, b.PreferredLocation) {
			return true
		}
		for _, it := range b.Items {
			if m.Match(it.TitleSnapshot) || m.MatchPtr(it.ServiceTitle) {
				return true
			}
		}
		return false
	}
}

// ProductMatch returns the predicate used by the products table.
func ProductMatch(q Query) func(models.Product) bool {
	m := NewMatcher(q.Search)
	return func(p models.Product) bool {
		return m.Match(p.Name, p.Slug, p.DisplayID()) || m.MatchPtr(p.SKU, p.PrimaryImageURL)
	}
}

// ReviewMatch returns the predicate used by the reviews table. Reviews with
// no status count as pending.
func ReviewMatch(q Query) func(models.Review) bool {
	m := NewMatcher(q.Search)
	return func(r models.Review) bool {
		if !EqualFoldOrAll(q.Status, r.EffectiveStatus()) {
			return false
		}
		if m.Empty() {
			return true
		}
		if m.Match(r.DisplayID(), "R"+strconv.FormatInt(r.ID, 10), strconv.FormatInt(r.ID, 10), strconv.Itoa(r.Rating)) {
			return true
		}
		if m.MatchPtr(r.Title, r.Body) {
			return true
		}
		if r.Product != nil && (m.Match(r.Product.Name) || m.MatchPtr(r.Product.Slug)) {
			return true
		}
		if r.Reviewer != nil && m.MatchPtr(r.Reviewer.FullName, r.Reviewer.Phone) {
			return true
		}
		return false
	}
}

// CustomerMatch returns the predicate used by the customers table.
func CustomerMatch(q Query) func(models.CustomerStats) bool {
	m := NewMatcher(q.Search)
	return func(c models.CustomerStats) bool {
		if !EqualFoldOrAll(q.Status, c.Status()) {
			return false
		}
		return m.MatchPtr(c.FullName, c.Email, c.Phone)
	}
}

// ContactMatch returns the predicate used by the contact inbox.
func ContactMatch(q Query) func(models.Contact) bool {
	m := NewMatcher(q.Search)
	return func(c models.Contact) bool {
		return m.MatchPtr(c.Name, c.Email, c.Phone, c.Subject, c.Message)
	}
}

// UserMatch returns the predicate used by the role manager.
func UserMatch(q Query) func(models.UserWithRole) bool {
	m := NewMatcher(q.Search)
	return func(u models.UserWithRole) bool {
		if !EqualFoldOrAll(q.Status, string(u.Role)) {
			return false
		}
		return m.MatchPtr(u.FullName, u.Email)
	}
}

// BlogMatch returns the predicate used by the blogs table.
func BlogMatch(q Query) func(models.Blog) bool {
	m := NewMatcher(q.Search)
	return func(b models.Blog) bool {
		switch q.Status {
		case "published":
			if !b.Published {
				return false
			}
		case "draft":
			if b.Published {
				return false
			}
		}
		if m.Match(b.Title, b.Slug) || m.MatchPtr(b.Excerpt) {
			return true
		}
		return b.Author != nil && m.Match(b.Author.Name)
	}
}

// ServiceMatch returns the predicate used by the services table.
func ServiceMatch(q Query) func(models.Service) bool {
	m := NewMatcher(q.Search)
	return func(s models.Service) bool {
		return m.Match(s.Title, s.Slug) || m.MatchPtr(s.ShortDesc)
	}
}
