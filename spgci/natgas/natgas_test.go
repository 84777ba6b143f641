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

package natgas

import (
	"context"
	"testing"

	"github.com/spgci/spgci-go/dates"
	"github.com/spgci/spgci-go/spgci"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNatGas(t *testing.T) {
	t.Parallel()

	tokenPage := `{"access_token": "tok-1"}`

	Convey("natgas operations with a test server", t, func() {
		server := spgci.NewTestServer()
		defer server.Close()
		client, err := spgci.NewClient(spgci.Config{
			Username: "user",
			Password: "secret",
			BaseURL:  server.URL(),
		})
		So(err, ShouldBeNil)
		ctx := spgci.UseClient(context.Background(), client)

		Convey("Pipelines builds the reference-data request", func() {
			server.ResponseBody = []string{tokenPage, `
{
  "metadata": {"count": 1, "pageSize": 2000},
  "results": [{"pipelineName": "Transco", "state": "NJ"}]
}`}
			res, err := Pipelines(ctx, PipelinesParams{
				State:        []string{"NJ"},
				FacilityType: []FacilityType{Interconnect},
			})
			So(err, ShouldBeNil)
			So(res.Table.NumRows(), ShouldEqual, 1)
			So(server.RequestPath, ShouldEqual,
				"/analytics/natural-gas/north-america/supply-demand/v1/pipeline-reference-data")
			So(server.RequestQuery.Get("filter"), ShouldEqual,
				`state: "NJ" AND facilityType: "Interconnect"`)
			So(server.RequestQuery.Get("pageSize"), ShouldEqual, "2000")
		})

		Convey("Pipelines passes the free-text query", func() {
			server.ResponseBody = []string{tokenPage,
				`{"metadata": {"count": 0, "pageSize": 2000}, "results": []}`}
			_, err := Pipelines(ctx, PipelinesParams{Q: "transco"})
			So(err, ShouldBeNil)
			So(server.RequestQuery.Get("q"), ShouldEqual, "transco")
			So(server.RequestQuery.Has("filter"), ShouldBeFalse)
		})

		Convey("PipelineFlows builds ranges and coerces datetimes", func() {
			server.ResponseBody = []string{tokenPage, `
{
  "metadata": {"count": 1, "pageSize": 2000},
  "results": [{"gasDate": "2023-01-15", "pipelineId": 34, "scheduledVolume": 1500}]
}`}
			res, err := PipelineFlows(ctx, PipelineFlowsParams{
				PipelineID: []int{34},
				GasDateGte: dates.NewDate(2023, 1, 1),
				GasDateLt:  dates.NewDate(2023, 2, 1),
			})
			So(err, ShouldBeNil)
			So(server.RequestQuery.Get("filter"), ShouldEqual,
				`pipelineId: 34 AND gasDate >= "2023-01-01" AND gasDate < "2023-02-01"`)
			col, ok := res.Table.Column("gasDate")
			So(ok, ShouldBeTrue)
			So(col[0].(dates.Time).String(), ShouldEqual, "2023-01-15 00:00:00")
		})

		Convey("PipelineFlows filters on DataActive only when set", func() {
			server.ResponseBody = []string{tokenPage,
				`{"metadata": {"count": 0, "pageSize": 2000}, "results": []}`}
			active := false
			_, err := PipelineFlows(ctx, PipelineFlowsParams{DataActive: &active})
			So(err, ShouldBeNil)
			So(server.RequestQuery.Get("filter"), ShouldEqual, `dataActive: false`)

			_, err = PipelineFlows(ctx, PipelineFlowsParams{})
			So(err, ShouldBeNil)
			So(server.RequestQuery.Has("filter"), ShouldBeFalse)
		})
	})
}
