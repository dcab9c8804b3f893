// Package course provides the course catalog aggregate. Courses are owned
// by admin tooling and are read-only to the entitlement core.
package course

// Status represents the course lifecycle status.
type Status string

const (
	// StatusDraft indicates the course is not yet visible in the catalog
	StatusDraft Status = "draft"
	// StatusActive indicates the course is purchasable and visible
	StatusActive Status = "active"
	// StatusArchived indicates the course was withdrawn from sale
	StatusArchived Status = "archived"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	default:
		return false
	}
}

func (s Status) IsPurchasable() bool {
	return s == StatusActive
}

func (s Status) String() string {
	return string(s)
}

// BilingualText carries Mongolian and English variants of a text field.
type BilingualText struct {
	MN string
	EN string
}

// In returns the variant for the given language tag base ("mn" or "en"),
// falling back to the other variant when one is empty.
func (t BilingualText) In(lang string) string {
	switch lang {
	case "en":
		if t.EN != "" {
			return t.EN
		}
		return t.MN
	default:
		if t.MN != "" {
			return t.MN
		}
		return t.EN
	}
}

func (t BilingualText) IsZero() bool {
	return t.MN == "" && t.EN == ""
}
