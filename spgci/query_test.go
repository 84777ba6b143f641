// Copyright 2025 S&P Global Commodity Insights

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spgci

import (
	"testing"

	"github.com/spgci/spgci-go/dates"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	Convey("Core grammar", t, func() {
		Convey("scalar equality", func() {
			q := NewQuery().
				Equal("state", String("NJ")).
				Equal("facilityType", String("Interconnect"))
			So(q.String(), ShouldEqual, `state: "NJ" AND facilityType: "Interconnect"`)
		})

		Convey("list membership", func() {
			q := NewQuery().In("commodity", Strings("Naphtha", "Ethane")...)
			So(q.String(), ShouldEqual, `commodity in ("Naphtha","Ethane")`)
		})

		Convey("one-element list collapses to equality", func() {
			q := NewQuery().In("commodity", Strings("Naphtha")...)
			So(q.String(), ShouldEqual, `commodity: "Naphtha"`)
		})

		Convey("range operators", func() {
			q := NewQuery().
				Gte("gasDate", Date(dates.NewDate(2023, 1, 1))).
				Lt("gasDate", Date(dates.NewDate(2023, 2, 1)))
			So(q.String(), ShouldEqual,
				`gasDate >= "2023-01-01" AND gasDate < "2023-02-01"`)
		})

		Convey("numbers render unquoted", func() {
			q := NewQuery().Gt("year", Int(2023)).Gte("value", Float(1.5))
			So(q.String(), ShouldEqual, `year > 2023 AND value >= 1.5`)
		})

		Convey("booleans always render", func() {
			q := NewQuery().Equal("isActive", Bool(false))
			So(q.String(), ShouldEqual, `isActive: false`)
		})

		Convey("zero values are omitted", func() {
			q := NewQuery().
				Equal("state", String("")).
				Equal("year", Int(0)).
				Equal("value", Float(0)).
				Equal("gasDate", Date(dates.Date{})).
				In("commodity").
				Equal("county", String("Bergen"))
			So(q.String(), ShouldEqual, `county: "Bergen"`)
		})

		Convey("extra expression joins with AND", func() {
			q := NewQuery().Equal("state", String("NJ")).Extra(`county <> "Bergen"`)
			So(q.String(), ShouldEqual, `state: "NJ" AND (county <> "Bergen")`)
		})

		Convey("extra expression alone passes through verbatim", func() {
			q := NewQuery().Extra(`county <> "Bergen"`)
			So(q.String(), ShouldEqual, `county <> "Bergen"`)
		})

		Convey("empty query", func() {
			So(NewQuery().Empty(), ShouldBeTrue)
			So(NewQuery().Equal("state", String("NJ")).Empty(), ShouldBeFalse)
		})

		Convey("modifiers are copy-on-write", func() {
			base := NewQuery().Equal("state", String("NJ"))
			q1 := base.Equal("county", String("Bergen"))
			q2 := base.Equal("county", String("Essex"))
			So(base.String(), ShouldEqual, `state: "NJ"`)
			So(q1.String(), ShouldEqual, `state: "NJ" AND county: "Bergen"`)
			So(q2.String(), ShouldEqual, `state: "NJ" AND county: "Essex"`)
		})
	})

	Convey("OData grammar", t, func() {
		Convey("scalar equality quotes strings with single quotes", func() {
			q := NewODataQuery().Equal("Owner/Name", String("Acme"))
			So(q.String(), ShouldEqual, `Owner/Name eq 'Acme'`)
		})

		Convey("word comparison operators", func() {
			q := NewODataQuery().Gte("Year", Int(2020)).Lt("Year", Int(2023))
			So(q.String(), ShouldEqual, `Year ge 2020 AND Year lt 2023`)
		})

		Convey("dates are unquoted in equality, quoted in lists", func() {
			d1 := dates.NewDate(2023, 1, 1)
			d2 := dates.NewDate(2023, 4, 1)
			q := NewODataQuery().Equal("ReportDate", Date(d1))
			So(q.String(), ShouldEqual, `ReportDate eq 2023-01-01`)
			q = NewODataQuery().In("ReportDate", Dates(d1, d2)...)
			So(q.String(), ShouldEqual, `ReportDate in ('2023-01-01','2023-04-01')`)
		})

		Convey("list membership", func() {
			q := NewODataQuery().In("Year", Ints(2022, 2023)...)
			So(q.String(), ShouldEqual, `Year in (2022,2023)`)
		})
	})
}
