package matching

import (
	"sort"

	"github.com/okian/matchmaker/internal/domain/model"
	"github.com/okian/matchmaker/internal/domain/text"
)

// DefaultTopK is the shortlist length shown to a prospective member.
const DefaultTopK = 3

// Match pairs a candidate with its similarity to the query.
type Match struct {
	Candidate model.Profile
	// Score is the cosine similarity in [0, 1].
	Score float64
	// Position is the candidate's index in the input slice.
	Position int
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithTokenizer sets the tokenizer used for every profile.
func WithTokenizer(t *text.Tokenizer) Option {
	return func(r *Ranker) {
		if t != nil {
			r.tokenizer = t
		}
	}
}

// Ranker scores candidates against a query profile. It holds no state
// between calls and is safe for concurrent use.
type Ranker struct {
	tokenizer *text.Tokenizer
}

// NewRanker creates a ranker using the default tokenizer unless overridden.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{tokenizer: text.NewTokenizer()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Vector builds the term vector of p.
func (r *Ranker) Vector(p model.Profile, catalog model.Catalog) text.Vector {
	return text.Vectorize(r.tokenizer.Tokenize(ComposeProfileText(p, catalog)))
}

// Score returns the similarity of a single candidate to the query.
func (r *Ranker) Score(query, candidate model.Profile, catalog model.Catalog) float64 {
	return text.CosineSimilarity(r.Vector(query, catalog), r.Vector(candidate, catalog))
}

// Rank returns at most k candidates ordered by score, highest first.
// Candidates with equal scores keep their input order. An empty candidate
// list or k < 1 yields an empty result.
func (r *Ranker) Rank(query model.Profile, candidates []model.Profile, catalog model.Catalog, k int) []Match {
	if len(candidates) == 0 || k < 1 {
		return []Match{}
	}

	qv := r.Vector(query, catalog)
	scored := make([]Match, len(candidates))
	for i, c := range candidates {
		scored[i] = Match{
			Candidate: c,
			Score:     text.CosineSimilarity(qv, r.Vector(c, catalog)),
			Position:  i,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k < len(scored) {
		scored = scored[:k]
	}
	return scored
}

var defaultRanker = NewRanker()

// Rank ranks candidates with the default tokenizer.
func Rank(query model.Profile, candidates []model.Profile, catalog model.Catalog, k int) []Match {
	return defaultRanker.Rank(query, candidates, catalog, k)
}
