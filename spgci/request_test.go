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
	"context"
	"testing"

	"github.com/spgci/spgci-go/table"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRequest(t *testing.T) {
	t.Parallel()

	tokenPage := `{"access_token": "tok-1"}`

	Convey("GetData with a test server", t, func() {
		server := NewTestServer()
		defer server.Close()
		client := testClient(server)
		ctx := UseClient(context.Background(), client)

		Convey("requires a client in the context", func() {
			_, err := GetData(context.Background(), Request{Path: "some/path"})
			So(err, ShouldNotBeNil)
		})

		Convey("single page", func() {
			server.ResponseBody = []string{tokenPage, `
{
  "metadata": {"totalPages": 1},
  "results": [{"symbol": "A", "value": 1}, {"symbol": "B", "value": 2}]
}`}
			res, err := GetData(ctx, Request{Path: "some/path", PageSize: 100})
			So(err, ShouldBeNil)
			So(res.Pages, ShouldEqual, 1)
			So(res.Table.NumRows(), ShouldEqual, 2)
			So(server.RequestQuery.Get("page"), ShouldEqual, "1")
			So(server.RequestQuery.Get("pageSize"), ShouldEqual, "100")
		})

		Convey("sends the filter and free-text query", func() {
			server.ResponseBody = []string{tokenPage,
				`{"metadata": {"totalPages": 1}, "results": []}`}
			_, err := GetData(ctx, Request{
				Path:  "some/path",
				Query: NewQuery().Equal("state", String("NJ")),
				Q:     "gas",
			})
			So(err, ShouldBeNil)
			So(server.RequestQuery.Get("filter"), ShouldEqual, `state: "NJ"`)
			So(server.RequestQuery.Get("q"), ShouldEqual, "gas")
		})

		Convey("paginated fetch concatenates pages in order", func() {
			server.ResponseBody = []string{
				tokenPage,
				`{"metadata": {"totalPages": 3}, "results": [{"n": 1}, {"n": 2}]}`,
				`{"metadata": {"totalPages": 3}, "results": [{"n": 3}]}`,
				`{"metadata": {"totalPages": 3}, "results": [{"n": 4}]}`,
			}
			res, err := GetData(ctx, Request{Path: "some/path", Paginate: true})
			So(err, ShouldBeNil)
			So(res.Pages, ShouldEqual, 3)
			col, ok := res.Table.Column("n")
			So(ok, ShouldBeTrue)
			So(col, ShouldResemble, []table.Value{1.0, 2.0, 3.0, 4.0})
			So(server.RequestQuery.Get("page"), ShouldEqual, "3")
		})

		Convey("multi-page result without Paginate returns the first page", func() {
			server.ResponseBody = []string{
				tokenPage,
				`{"metadata": {"totalPages": 3}, "results": [{"n": 1}]}`,
			}
			res, err := GetData(ctx, Request{Path: "some/path"})
			So(err, ShouldBeNil)
			So(res.Pages, ShouldEqual, 1)
			So(res.Table.NumRows(), ShouldEqual, 1)
			So(server.RequestCount, ShouldEqual, 2) // token + one page
		})

		Convey("a failing later page fails the whole fetch", func() {
			server.ResponseBody = []string{
				tokenPage,
				`{"metadata": {"totalPages": 3}, "results": [{"n": 1}]}`,
				`server error`,
			}
			server.ResponseStatus = []int{200, 200, 500}
			_, err := GetData(ctx, Request{Path: "some/path", Paginate: true})
			So(err, ShouldNotBeNil)
		})

		Convey("raw mode returns the undecoded payload", func() {
			payload := `{"anything": ["goes", "here"]}`
			server.ResponseBody = []string{tokenPage, payload}
			res, err := GetData(ctx, Request{Path: "some/path", Raw: true, Paginate: true})
			So(err, ShouldBeNil)
			So(res.Table, ShouldBeNil)
			So(string(res.Body), ShouldEqual, payload)
			So(res.Pages, ShouldEqual, 1)
			So(server.RequestCount, ShouldEqual, 2)
		})

		Convey("count/pageSize paginator", func() {
			server.ResponseBody = []string{
				tokenPage,
				`{"metadata": {"count": 5, "pageSize": 2}, "results": [{"n": 1}, {"n": 2}]}`,
				`{"metadata": {"count": 5, "pageSize": 2}, "results": [{"n": 3}, {"n": 4}]}`,
				`{"metadata": {"count": 5, "pageSize": 2}, "results": [{"n": 5}]}`,
			}
			res, err := GetData(ctx, Request{
				Path:       "some/path",
				PageSize:   2,
				Paginate:   true,
				PaginateFn: PaginateCountSize,
			})
			So(err, ShouldBeNil)
			So(res.Pages, ShouldEqual, 3)
			So(res.Table.NumRows(), ShouldEqual, 5)
		})

		Convey("odata paginator advances by $skip offsets", func() {
			server.ResponseBody = []string{
				tokenPage,
				`{"@odata.count": 5, "value": [{"n": 1}, {"n": 2}]}`,
				`{"@odata.count": 5, "value": [{"n": 3}, {"n": 4}]}`,
				`{"@odata.count": 5, "value": [{"n": 5}]}`,
			}
			res, err := GetData(ctx, Request{
				Path:       "odata/path",
				OData:      true,
				PageSize:   2,
				Paginate:   true,
				PaginateFn: PaginateOData,
				RecordsFn:  RecordsKey("value"),
				Query:      NewODataQuery().Equal("Year", Int(2023)),
			})
			So(err, ShouldBeNil)
			So(res.Pages, ShouldEqual, 3)
			So(res.Table.NumRows(), ShouldEqual, 5)
			So(server.RequestQuery.Get("$skip"), ShouldEqual, "4")
			So(server.RequestQuery.Get("$filter"), ShouldEqual, "Year eq 2023")
		})

		Convey("single-page endpoints with PaginateNone", func() {
			server.ResponseBody = []string{tokenPage, `{"results": [{"n": 1}]}`}
			res, err := GetData(ctx, Request{
				Path:       "some/path",
				PaginateFn: PaginateNone,
			})
			So(err, ShouldBeNil)
			So(res.Pages, ShouldEqual, 1)
			So(res.Table.NumRows(), ShouldEqual, 1)
		})

		Convey("missing results key is an error", func() {
			server.ResponseBody = []string{tokenPage, `{"data": []}`}
			_, err := GetData(ctx, Request{Path: "some/path"})
			So(err, ShouldNotBeNil)
		})
	})
}
