package model

import "time"

// Academic years offered on the profile forms.
const (
	YearFreshman  = "Freshman"
	YearSophomore = "Sophomore"
	YearJunior    = "Junior"
	YearSenior    = "Senior"
	YearGraduate  = "Graduate"
)

// DefaultQueryName is shown for a prospective member who left the name blank.
const DefaultQueryName = "PNM"

// Profile describes either a roster member or the prospective member
// (PNM) being matched. Badges holds badge IDs; duplicates are allowed.
type Profile struct {
	Name        string   `json:"name"`
	Year        string   `json:"year"`
	Major       string   `json:"major"`
	Description string   `json:"description"`
	Badges      []string `json:"badges"`
	Photo       string   `json:"photo,omitempty"`
}

// Roster is the candidate pool plus the badge catalog for one session.
// A Roster is never mutated after it has been loaded.
type Roster struct {
	Catalog  Catalog
	Members  []Profile
	LoadedAt time.Time
}
