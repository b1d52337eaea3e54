// Package types contains the read shapes returned to API clients.
package types

import (
	"math"
	"strings"
	"time"

	"github.com/okian/matchmaker/internal/domain/calendar"
	"github.com/okian/matchmaker/internal/domain/matching"
	"github.com/okian/matchmaker/internal/domain/model"
)

// Member is a roster member with badge IDs resolved for display.
type Member struct {
	Name        string        `json:"name"`
	Year        string        `json:"year"`
	Major       string        `json:"major"`
	Description string        `json:"description"`
	Photo       string        `json:"photo,omitempty"`
	Badges      []model.Badge `json:"badges"`
}

// MatchEntry is one row of a PNM's shortlist.
type MatchEntry struct {
	Rank int `json:"rank"`
	Member
	// Score is the raw similarity in [0, 1].
	Score float64 `json:"score"`
	// MatchPercentage is Score as a whole-number percentage.
	MatchPercentage int    `json:"match_percentage"`
	CalendarLink    string `json:"calendar_link"`
}

// NewMember resolves p's badges against catalog. Unknown IDs are dropped.
func NewMember(p model.Profile, catalog model.Catalog) Member {
	return Member{
		Name:        p.Name,
		Year:        p.Year,
		Major:       p.Major,
		Description: p.Description,
		Photo:       p.Photo,
		Badges:      catalog.Resolve(p.Badges),
	}
}

// NewMatchEntries converts ranked matches into shortlist rows, numbering
// ranks from 1.
func NewMatchEntries(pnmName string, matches []matching.Match, catalog model.Catalog) []MatchEntry {
	out := make([]MatchEntry, len(matches))
	for i, m := range matches {
		out[i] = MatchEntry{
			Rank:            i + 1,
			Member:          NewMember(m.Candidate, catalog),
			Score:           m.Score,
			MatchPercentage: Percentage(m.Score),
			CalendarLink:    calendar.CoffeeChatLink(pnmName, m.Candidate.Name),
		}
	}
	return out
}

// Percentage rounds a [0, 1] score to a whole percentage.
func Percentage(score float64) int {
	return int(math.Round(score * 100))
}

// NoMatchesMessage accompanies an empty shortlist.
const NoMatchesMessage = "No matches yet"

// MatchResult is the shortlist for one prospective member.
type MatchResult struct {
	PNMName string       `json:"pnm_name"`
	Matches []MatchEntry `json:"matches"`
	Message string       `json:"message,omitempty"`
}

// NewMatchResult builds the shortlist for pnmName. A blank name becomes
// model.DefaultQueryName.
func NewMatchResult(pnmName string, matches []matching.Match, catalog model.Catalog) MatchResult {
	if strings.TrimSpace(pnmName) == "" {
		pnmName = model.DefaultQueryName
	}
	res := MatchResult{
		PNMName: pnmName,
		Matches: NewMatchEntries(pnmName, matches, catalog),
	}
	if len(res.Matches) == 0 {
		res.Message = NoMatchesMessage
	}
	return res
}

// RosterView is the loaded roster as shown to clients.
type RosterView struct {
	Members  []Member      `json:"members"`
	Badges   []model.Badge `json:"badges"`
	LoadedAt time.Time     `json:"loaded_at"`
}

// NewRosterView resolves every member's badges.
func NewRosterView(r *model.Roster) RosterView {
	members := make([]Member, len(r.Members))
	for i, p := range r.Members {
		members[i] = NewMember(p, r.Catalog)
	}
	return RosterView{
		Members:  members,
		Badges:   r.Catalog.All(),
		LoadedAt: r.LoadedAt,
	}
}
