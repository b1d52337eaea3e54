package repository

import (
	"errors"
	"testing"
)

const sampleRoster = `{
  "badges": [
    {"id": "b1", "name": "Hiking", "icon": "🥾", "pillar": "BROTHERHOOD"},
    {"id": "b2", "name": "Chess", "icon": null, "pillar": null}
  ],
  "brothers": [
    {"name": "Alex", "year": "Junior", "major": "Biology", "description": "I love hiking", "badges": ["b1"]},
    {"name": "Sam", "year": null, "major": null, "description": null, "badges": null}
  ]
}`

func TestDecode(t *testing.T) {
	r, err := Decode([]byte(sampleRoster))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Catalog.Len(); got != 2 {
		t.Errorf("catalog len = %d, want 2", got)
	}
	if got := len(r.Members); got != 2 {
		t.Fatalf("members = %d, want 2", got)
	}
	if r.Members[0].Name != "Alex" || r.Members[0].Badges[0] != "b1" {
		t.Errorf("first member decoded wrong: %+v", r.Members[0])
	}
	if r.Members[1].Major != "" || r.Members[1].Badges != nil {
		t.Errorf("null fields should decode to zero values: %+v", r.Members[1])
	}
	b, ok := r.Catalog.Lookup("b2")
	if !ok || b.Name != "Chess" || b.Icon != "" {
		t.Errorf("lookup b2 = %+v, %v", b, ok)
	}
}

func TestDecodeEmptyRoster(t *testing.T) {
	r, err := Decode([]byte(`{"badges": [], "brothers": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Members == nil || len(r.Members) != 0 {
		t.Errorf("members = %v, want empty non-nil slice", r.Members)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"badges": [`,
		"missing brothers":  `{"badges": []}`,
		"wrong type":        `{"badges": {}, "brothers": []}`,
		"badge without id":  `{"badges": [{"name": "x"}], "brothers": []}`,
		"member no name":    `{"badges": [], "brothers": [{"major": "Math"}]}`,
		"numeric badge ref": `{"badges": [], "brothers": [{"name": "A", "badges": [1]}]}`,
		"duplicate badge":   `{"badges": [{"id": "b1", "name": "A"}, {"id": "b1", "name": "B"}], "brothers": []}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			if !errors.Is(err, ErrLoad) {
				t.Errorf("error = %v, want ErrLoad", err)
			}
		})
	}
}
