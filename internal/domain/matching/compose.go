// Package matching ranks roster members against a prospective member by
// the similarity of their profile text.
package matching

import (
	"strings"

	"github.com/okian/matchmaker/internal/domain/model"
)

// ComposeProfileText joins description, major, year and the names of the
// profile's badges into the text that gets tokenized. Empty parts are left
// out. A badge ID missing from the catalog still takes its slot in the
// badge list but contributes an empty name.
func ComposeProfileText(p model.Profile, catalog model.Catalog) string {
	names := make([]string, len(p.Badges))
	for i, id := range p.Badges {
		if b, ok := catalog.Lookup(id); ok {
			names[i] = b.Name
		}
	}

	parts := make([]string, 0, 4)
	for _, s := range []string{p.Description, p.Major, p.Year, strings.Join(names, " ")} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
