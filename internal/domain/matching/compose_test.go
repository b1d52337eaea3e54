package matching_test

import (
	"testing"

	"github.com/okian/matchmaker/internal/domain/matching"
	"github.com/okian/matchmaker/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func testCatalog() model.Catalog {
	return model.NewCatalog([]model.Badge{
		{ID: "outdoors", Name: "Outdoors", Icon: "images/badges/brotherhood-outdoors.png", Pillar: model.PillarBrotherhood},
		{ID: "finance", Name: "Finance", Icon: "images/badges/profession-finance.png", Pillar: model.PillarProfessionalism},
		{ID: "tech", Name: "Technical Skills", Icon: "images/badges/profession-technical.png", Pillar: model.PillarProfessionalism},
	})
}

func TestComposeProfileText(t *testing.T) {
	Convey("Given a catalog", t, func() {
		catalog := testCatalog()

		Convey("When every field is set", func() {
			p := model.Profile{
				Description: "Loves robotics",
				Major:       "Mechanical Engineering",
				Year:        model.YearJunior,
				Badges:      []string{"tech", "outdoors"},
			}

			Convey("Then parts should be joined in order", func() {
				So(matching.ComposeProfileText(p, catalog), ShouldEqual,
					"Loves robotics Mechanical Engineering Junior Technical Skills Outdoors")
			})
		})

		Convey("When some fields are empty", func() {
			p := model.Profile{Major: "Finance", Badges: []string{"finance"}}

			Convey("Then empty fields should be omitted", func() {
				So(matching.ComposeProfileText(p, catalog), ShouldEqual, "Finance Finance")
			})
		})

		Convey("When the profile is empty", func() {
			Convey("Then the text should be empty", func() {
				So(matching.ComposeProfileText(model.Profile{}, catalog), ShouldEqual, "")
			})
		})

		Convey("When a badge ID is not in the catalog", func() {
			p := model.Profile{Description: "chess", Badges: []string{"ghost"}}

			Convey("Then it should add no text and no error", func() {
				So(matching.ComposeProfileText(p, catalog), ShouldEqual, "chess")
			})
		})

		Convey("When the same profile is composed twice", func() {
			p := model.Profile{Description: "a b c", Year: model.YearSenior, Badges: []string{"finance", "finance"}}

			Convey("Then the output should be identical", func() {
				So(matching.ComposeProfileText(p, catalog), ShouldEqual, matching.ComposeProfileText(p, catalog))
			})
		})
	})
}
