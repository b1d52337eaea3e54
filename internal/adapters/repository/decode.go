package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/okian/matchmaker/internal/domain/model"
)

//go:embed roster.schema.json
var rosterSchemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func rosterSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(rosterSchemaJSON))
	})
	return schema, schemaErr
}

// document is the wire shape of data/matchmaking.json.
type document struct {
	Badges  []model.Badge   `json:"badges"`
	Members []model.Profile `json:"brothers"`
}

// Decode validates a roster document and converts it into a Roster. Badge
// IDs must be unique. Every failure wraps ErrLoad.
func Decode(data []byte) (*model.Roster, error) {
	s, err := rosterSchema()
	if err != nil {
		return nil, fmt.Errorf("%w: compile schema: %w", ErrLoad, err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrLoad, strings.Join(msgs, "; "))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	seen := make(map[string]struct{}, len(doc.Badges))
	for _, b := range doc.Badges {
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate badge id %q", ErrLoad, b.ID)
		}
		seen[b.ID] = struct{}{}
	}

	members := doc.Members
	if members == nil {
		members = []model.Profile{}
	}
	return &model.Roster{
		Catalog: model.NewCatalog(doc.Badges),
		Members: members,
	}, nil
}
