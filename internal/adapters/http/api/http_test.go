package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/matchmaker/internal/adapters/http/api"
	"github.com/okian/matchmaker/internal/adapters/repository"
	"github.com/okian/matchmaker/internal/domain/matching"
	"github.com/okian/matchmaker/internal/domain/model"
	"github.com/okian/matchmaker/internal/domain/types"
	"github.com/okian/matchmaker/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeDeps ranks a fixed roster with the real engine.
type fakeDeps struct {
	roster  *model.Roster
	maxTopK int
	lastK   int
	err     error
}

func newFakeDeps() *fakeDeps {
	return &fakeDeps{
		maxTopK: 5,
		roster: &model.Roster{
			Catalog: model.NewCatalog([]model.Badge{
				{ID: "hike", Name: "Hiking", Pillar: model.PillarBrotherhood},
				{ID: "code", Name: "Programming", Pillar: model.PillarProfessionalism},
			}),
			Members: []model.Profile{
				{Name: "Jordan", Description: "software and robots", Badges: []string{"code"}},
				{Name: "Riley", Description: "mountain hiking", Badges: []string{"hike"}},
			},
		},
	}
}

func (f *fakeDeps) snapshot() (*model.Roster, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roster, nil
}

func (f *fakeDeps) Match(_ context.Context, q model.Profile, k int) (types.MatchResult, error) {
	f.lastK = k
	r, err := f.snapshot()
	if err != nil {
		return types.MatchResult{}, err
	}
	if k == 0 {
		k = matching.DefaultTopK
	}
	if k > f.maxTopK {
		return types.MatchResult{}, fmt.Errorf("%w: %d", matching.ErrInvalidTopK, k)
	}
	return types.NewMatchResult(q.Name, matching.Rank(q, r.Members, r.Catalog, k), r.Catalog), nil
}

func (f *fakeDeps) MatchBatch(ctx context.Context, qs []model.Profile, k int) ([]types.MatchResult, error) {
	if len(qs) == 0 {
		return nil, matching.ErrEmptyBatch
	}
	out := make([]types.MatchResult, len(qs))
	for i, q := range qs {
		res, err := f.Match(ctx, q, k)
		if err != nil {
			return nil, err
		}
		out[i] = res
	}
	return out, nil
}

func (f *fakeDeps) Roster(context.Context) (types.RosterView, error) {
	r, err := f.snapshot()
	if err != nil {
		return types.RosterView{}, err
	}
	return types.NewRosterView(r), nil
}

func (f *fakeDeps) Badges(context.Context) ([]model.Badge, error) {
	r, err := f.snapshot()
	if err != nil {
		return nil, err
	}
	return r.Catalog.All(), nil
}

func (f *fakeDeps) Ready() bool { return f.err == nil }

type fakeStats struct{}

func (fakeStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"members": 2}
}

func newMux(deps *fakeDeps, opts ...api.Option) *http.ServeMux {
	mux := http.NewServeMux()
	opts = append([]api.Option{api.WithLogger(logger.Nop())}, opts...)
	api.NewServer(deps, fakeStats{}, opts...).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
	return out
}

func TestHandleMatch(t *testing.T) {
	Convey("Given a server with a loaded roster", t, func() {
		deps := newFakeDeps()
		mux := newMux(deps, api.WithMaxDescriptionLength(20))

		Convey("When posting a query", func() {
			w := do(mux, http.MethodPost, "/match", `{"name":"Alex","description":"hiking","badges":["hike"],"k":1}`)

			Convey("Then the shortlist should be returned with a request ID", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)

				body := decode(w)
				So(body["request_id"], ShouldEqual, w.Header().Get(api.RequestIDHeader))
				So(body["pnm_name"], ShouldEqual, "Alex")
				matches := body["matches"].([]any)
				So(len(matches), ShouldEqual, 1)
				first := matches[0].(map[string]any)
				So(first["name"], ShouldEqual, "Riley")
				So(first["rank"], ShouldEqual, 1.0)
				So(first["calendar_link"], ShouldContainSubstring, "calendar.google.com")
			})
		})

		Convey("When k is omitted the default should be delegated", func() {
			w := do(mux, http.MethodPost, "/match", `{"name":"Alex"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastK, ShouldEqual, 0)
		})

		Convey("When the client supplies a request ID it should be echoed", func() {
			req := httptest.NewRequest(http.MethodPost, "/match", strings.NewReader(`{}`))
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			So(decode(w)["request_id"], ShouldEqual, "abc-123")
		})

		Convey("Invalid requests should be rejected with 400", func() {
			cases := []string{
				`{"name":`,
				`{"k":0}`,
				`{"k":-2}`,
				`{"k":6}`,
				`{"description":"this description is far too long"}`,
			}
			for _, body := range cases {
				w := do(mux, http.MethodPost, "/match", body)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decode(w)["code"], ShouldEqual, "bad_request")
			}
		})

		Convey("GET should not be allowed", func() {
			w := do(mux, http.MethodGet, "/match", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})

	Convey("Given a server with an empty roster", t, func() {
		deps := newFakeDeps()
		deps.roster = &model.Roster{Catalog: model.NewCatalog(nil), Members: []model.Profile{}}
		mux := newMux(deps)

		Convey("The response should carry an empty list and the message", func() {
			w := do(mux, http.MethodPost, "/match", `{"name":""}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["matches"], ShouldResemble, []any{})
			So(body["message"], ShouldEqual, types.NoMatchesMessage)
			So(body["pnm_name"], ShouldEqual, model.DefaultQueryName)
		})
	})
}

func TestHandleMatchBatch(t *testing.T) {
	Convey("Given a server with a loaded roster", t, func() {
		mux := newMux(newFakeDeps())

		Convey("Results should follow query order", func() {
			w := do(mux, http.MethodPost, "/match/batch",
				`{"queries":[{"name":"A","description":"robots"},{"name":"B","description":"hiking"}],"k":1}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			results := decode(w)["results"].([]any)
			So(len(results), ShouldEqual, 2)
			first := results[0].(map[string]any)["matches"].([]any)[0].(map[string]any)
			second := results[1].(map[string]any)["matches"].([]any)[0].(map[string]any)
			So(first["name"], ShouldEqual, "Jordan")
			So(second["name"], ShouldEqual, "Riley")
		})

		Convey("An empty batch should be a bad request", func() {
			w := do(mux, http.MethodPost, "/match/batch", `{"queries":[]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An invalid k should be a bad request", func() {
			w := do(mux, http.MethodPost, "/match/batch", `{"queries":[{"name":"A"}],"k":0}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestReadEndpoints(t *testing.T) {
	Convey("Given a server with a loaded roster", t, func() {
		mux := newMux(newFakeDeps())

		Convey("GET /roster should list members with resolved badges", func() {
			w := do(mux, http.MethodGet, "/roster", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			members := decode(w)["members"].([]any)
			So(len(members), ShouldEqual, 2)
			badges := members[1].(map[string]any)["badges"].([]any)
			So(badges[0].(map[string]any)["name"], ShouldEqual, "Hiking")
		})

		Convey("GET /badges should list the catalog in order", func() {
			w := do(mux, http.MethodGet, "/badges", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var badges []model.Badge
			So(json.Unmarshal(w.Body.Bytes(), &badges), ShouldBeNil)
			So(len(badges), ShouldEqual, 2)
			So(badges[0].ID, ShouldEqual, "hike")
		})

		Convey("GET /healthz should report ok", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["status"], ShouldEqual, "ok")
		})

		Convey("GET /stats should return provider stats", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["members"], ShouldEqual, 2.0)
		})

		Convey("GET /metrics should expose prometheus text", func() {
			do(mux, http.MethodGet, "/badges", "")
			w := do(mux, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "matchmaker_")
		})
	})

	Convey("Given a server whose roster is not loaded", t, func() {
		deps := newFakeDeps()
		deps.err = repository.ErrNotReady
		mux := newMux(deps)

		Convey("Health and data endpoints should answer 503", func() {
			for _, path := range []string{"/healthz", "/roster", "/badges"} {
				w := do(mux, http.MethodGet, path, "")
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			}
			w := do(mux, http.MethodPost, "/match", `{}`)
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(decode(w)["code"], ShouldEqual, "not_ready")
		})
	})

	Convey("Given a dependency that fails unexpectedly", t, func() {
		deps := newFakeDeps()
		deps.err = errors.New("boom")
		mux := newMux(deps)

		Convey("Data endpoints should answer 500", func() {
			w := do(mux, http.MethodGet, "/roster", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(decode(w)["code"], ShouldEqual, "internal_error")
		})
	})
}

func TestOpError(t *testing.T) {
	Convey("Given errors built with the helpers", t, func() {
		cause := errors.New("cause")

		Convey("WrapKind should match both the kind and the cause", func() {
			err := api.WrapKind("op", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "op: bad request: cause")
		})

		Convey("NewKind and Wrap should format with the op", func() {
			So(api.NewKind("op", api.ErrBadRequest).Error(), ShouldEqual, "op: bad request")
			So(api.Wrap("op", cause).Error(), ShouldEqual, "op: cause")
			So(api.Wrap("op", nil), ShouldBeNil)
		})
	})
}
