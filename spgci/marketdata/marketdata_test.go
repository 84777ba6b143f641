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

package marketdata

import (
	"context"
	"testing"

	"github.com/spgci/spgci-go/dates"
	"github.com/spgci/spgci-go/spgci"
	"github.com/spgci/spgci-go/table"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMarketData(t *testing.T) {
	t.Parallel()

	tokenPage := `{"access_token": "tok-1"}`
	assessmentsPage := `
{
  "metadata": {"totalPages": 1},
  "results": [
    {
      "symbol": "PCAAS00",
      "data": [
        {
          "bate": "c",
          "value": 80.5,
          "assessDate": "2023-01-15",
          "change": {"deltaPrice": 1.5, "deltaPercent": 1.9}
        },
        {
          "bate": "h",
          "value": 81.0,
          "assessDate": "2023-01-15"
        }
      ]
    },
    {
      "symbol": "PCAAT00",
      "data": [
        {"bate": "c", "value": 75.25, "assessDate": "2023-01-15"}
      ]
    }
  ]
}`

	Convey("marketdata operations with a test server", t, func() {
		server := spgci.NewTestServer()
		defer server.Close()
		client, err := spgci.NewClient(spgci.Config{
			Username: "user",
			Password: "secret",
			BaseURL:  server.URL(),
		})
		So(err, ShouldBeNil)
		ctx := spgci.UseClient(context.Background(), client)

		Convey("AssessmentsBySymbolCurrent expands per-symbol data", func() {
			server.ResponseBody = []string{tokenPage, assessmentsPage}
			res, err := AssessmentsBySymbolCurrent(ctx, AssessmentsBySymbolCurrentParams{
				Symbol: []string{"PCAAS00", "PCAAT00"},
				Bate:   []string{"c", "h"},
			})
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/market-data/v3/value/current/symbol")
			So(server.RequestQuery.Get("filter"), ShouldEqual,
				`symbol in ("PCAAS00","PCAAT00") AND bate in ("c","h")`)
			So(server.RequestQuery.Get("field"), ShouldEqual,
				"deltaPrice,deltaPercent,pValue,pDate")
			So(res.Table.NumRows(), ShouldEqual, 3)

			col, ok := res.Table.Column("symbol")
			So(ok, ShouldBeTrue)
			So(col, ShouldResemble, []table.Value{"PCAAS00", "PCAAS00", "PCAAT00"})

			// The "change." prefix is stripped from delta fields.
			col, ok = res.Table.Column("deltaPrice")
			So(ok, ShouldBeTrue)
			So(col[0], ShouldEqual, 1.5)

			col, _ = res.Table.Column("assessDate")
			So(col[0].(dates.Time).String(), ShouldEqual, "2023-01-15 00:00:00")
		})

		Convey("AssessmentsBySymbolHistorical builds date ranges", func() {
			server.ResponseBody = []string{tokenPage,
				`{"metadata": {"totalPages": 1}, "results": []}`}
			_, err := AssessmentsBySymbolHistorical(ctx, AssessmentsBySymbolHistoricalParams{
				Symbol:        []string{"PCAAS00"},
				AssessDateGte: dates.NewDate(2023, 1, 1),
				AssessDateLte: dates.NewDate(2023, 2, 1),
			})
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/market-data/v3/value/history/symbol")
			So(server.RequestQuery.Get("filter"), ShouldEqual,
				`symbol: "PCAAS00" AND assessDate >= "2023-01-01" AND assessDate <= "2023-02-01"`)
			So(server.RequestQuery.Has("field"), ShouldBeFalse)
		})

		Convey("AssessmentsByMDCCurrent requires the MDC", func() {
			_, err := AssessmentsByMDCCurrent(ctx, AssessmentsByMDCCurrentParams{})
			So(err, ShouldNotBeNil)

			server.ResponseBody = []string{tokenPage,
				`{"metadata": {"totalPages": 1}, "results": []}`}
			_, err = AssessmentsByMDCCurrent(ctx, AssessmentsByMDCCurrentParams{MDC: "ET"})
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/market-data/v3/value/current/mdc")
			So(server.RequestQuery.Get("filter"), ShouldEqual, `MDC: "ET"`)
		})

		Convey("AssessmentsByMDCHistorical requires the MDC", func() {
			_, err := AssessmentsByMDCHistorical(ctx, AssessmentsByMDCHistoricalParams{})
			So(err, ShouldNotBeNil)

			server.ResponseBody = []string{tokenPage,
				`{"metadata": {"totalPages": 1}, "results": []}`}
			_, err = AssessmentsByMDCHistorical(ctx, AssessmentsByMDCHistoricalParams{
				MDC:          "ET",
				AssessDateGt: dates.NewDate(2023, 1, 1),
			})
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/market-data/v3/value/history/mdc")
			So(server.RequestQuery.Get("filter"), ShouldEqual,
				`MDC: "ET" AND assessDate > "2023-01-01"`)
		})

		Convey("Symbols searches the reference data", func() {
			server.ResponseBody = []string{tokenPage, `
{
  "metadata": {"total_pages": 1},
  "results": [{"symbol": "PCAAS00", "description": "Dated Brent", "commodity": "Crude oil"}]
}`}
			res, err := Symbols(ctx, SymbolsParams{
				Q:            "brent",
				Commodity:    []string{"Crude oil"},
				ContractType: []ContractType{Spot, Forward},
			})
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/market-data/reference-data/v3/search")
			So(server.RequestQuery.Get("q"), ShouldEqual, "brent")
			So(server.RequestQuery.Get("filter"), ShouldEqual,
				`commodity: "Crude oil" AND contract_type in ("spot","forward")`)
			// symbol and description lead the columns.
			So(res.Table.Header[:2], ShouldResemble, []string{"symbol", "description"})
		})

		Convey("MDCs lists categories without pagination", func() {
			server.ResponseBody = []string{tokenPage,
				`{"results": [{"mdc": "ET", "mdcName": "Europe gas"}]}`}
			res, err := MDCs(ctx, MDCsParams{})
			So(err, ShouldBeNil)
			So(server.RequestPath, ShouldEqual, "/market-data/reference-data/v3/mdc")
			So(server.RequestQuery.Get("subscribed_only"), ShouldEqual, "true")
			So(res.Table.NumRows(), ShouldEqual, 1)

			_, err = MDCs(ctx, MDCsParams{All: true})
			So(err, ShouldBeNil)
			So(server.RequestQuery.Get("subscribed_only"), ShouldEqual, "false")
		})
	})
}
