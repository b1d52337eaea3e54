// Package model contains domain models passed between layers.
package model

// Pillar groups badges for display. It never influences scoring.
type Pillar string

// Pillars used by the chapter's badge catalog.
const (
	PillarBrotherhood     Pillar = "BROTHERHOOD"
	PillarProfessionalism Pillar = "PROFESSIONALISM"
	PillarService         Pillar = "SERVICE"
)

// Badge is an interest tag a profile can carry. Its Name is what the
// matcher reads; Icon and Pillar are for display only.
type Badge struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Pillar Pillar `json:"pillar"`
}

// Catalog is the read-only badge lookup. It keeps the order badges were
// loaded in so listings stay stable.
type Catalog struct {
	order []Badge
	byID  map[string]Badge
}

// NewCatalog builds a catalog from badges. When an ID repeats, the last
// definition wins and keeps the position of the first one.
func NewCatalog(badges []Badge) Catalog {
	c := Catalog{
		order: make([]Badge, 0, len(badges)),
		byID:  make(map[string]Badge, len(badges)),
	}
	pos := make(map[string]int, len(badges))
	for _, b := range badges {
		if i, ok := pos[b.ID]; ok {
			c.order[i] = b
			c.byID[b.ID] = b
			continue
		}
		pos[b.ID] = len(c.order)
		c.order = append(c.order, b)
		c.byID[b.ID] = b
	}
	return c
}

// Lookup returns the badge with the given ID.
func (c Catalog) Lookup(id string) (Badge, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// Resolve maps ids to badges, skipping ids that are not in the catalog.
func (c Catalog) Resolve(ids []string) []Badge {
	out := make([]Badge, 0, len(ids))
	for _, id := range ids {
		if b, ok := c.byID[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// All returns a copy of the badges in load order.
func (c Catalog) All() []Badge {
	out := make([]Badge, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of distinct badges.
func (c Catalog) Len() int { return len(c.order) }
