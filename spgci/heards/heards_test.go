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

package heards

import (
	"context"
	"testing"

	"github.com/spgci/spgci-go/dates"
	"github.com/spgci/spgci-go/spgci"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHeards(t *testing.T) {
	t.Parallel()

	tokenPage := `{"access_token": "tok-1"}`

	Convey("heards operations with a test server", t, func() {
		server := spgci.NewTestServer()
		defer server.Close()
		client, err := spgci.NewClient(spgci.Config{
			Username: "user",
			Password: "secret",
			BaseURL:  server.URL(),
		})
		So(err, ShouldBeNil)
		ctx := spgci.UseClient(context.Background(), client)

		Convey("Heards requires a market", func() {
			_, err := Heards(ctx, HeardsParams{})
			So(err, ShouldNotBeNil)
		})

		Convey("Heards builds the filter and coerces timestamps", func() {
			server.ResponseBody = []string{tokenPage, `
{
  "metadata": {"total_pages": 1},
  "results": [
    {
      "market": "Americas crude",
      "headline": "WTI heard traded",
      "updatedDate": "2023-01-15T10:30:05Z"
    }
  ]
}`}
			res, err := Heards(ctx, HeardsParams{
				Market:         []string{"Americas crude"},
				UpdatedDateGte: dates.NewDate(2023, 1, 1),
			})
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/structured-heards/v1/data")
			So(server.RequestQuery.Get("filter"), ShouldEqual,
				`market: "Americas crude" AND updatedDate >= "2023-01-01"`)
			col, ok := res.Table.Column("updatedDate")
			So(ok, ShouldBeTrue)
			So(col[0].(dates.Time).String(), ShouldEqual, "2023-01-15 10:30:05")
		})

		Convey("Markets paginates by count and page size", func() {
			server.ResponseBody = []string{
				tokenPage,
				`{"metadata": {"count": 3, "pagesize": 2}, "results": [{"market": "A"}, {"market": "B"}]}`,
				`{"metadata": {"count": 3, "pagesize": 2}, "results": [{"market": "C"}]}`,
			}
			res, err := Markets(ctx, MarketsParams{PageSize: 2, Paginate: true})
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/structured-heards/v1/markets")
			So(res.Pages, ShouldEqual, 2)
			So(res.Table.NumRows(), ShouldEqual, 3)
		})
	})
}
