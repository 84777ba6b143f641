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

// Package oildemand implements the refined-product demand dataset: demand
// series by vintage, and the latest vintage only.
package oildemand

import (
	"context"

	"github.com/spgci/spgci-go/dates"
	"github.com/spgci/spgci-go/spgci"
	"github.com/spgci/spgci-go/table"
)

const basePath = "analytics/refined-product/v1"

// DemandParams are the filters of the Demand operation. List-valued fields
// match any of their elements; empty fields are not sent.
type DemandParams struct {
	Sector         []string
	Commodity      []string
	ProductType    []string
	OutlookHorizon []string
	SeriesName     []string
	FromRegion     []string
	Region         []string
	Country        []string
	Concept        []string
	Frequency      []string
	UOM            []string

	VintageDate    []dates.Date
	VintageDateGt  dates.Date
	VintageDateGte dates.Date
	VintageDateLt  dates.Date
	VintageDateLte dates.Date

	ReportForDate    []dates.Date
	ReportForDateGt  dates.Date
	ReportForDateGte dates.Date
	ReportForDateLt  dates.Date
	ReportForDateLte dates.Date

	HistoricalEdgeDate    []dates.Date
	HistoricalEdgeDateGt  dates.Date
	HistoricalEdgeDateGte dates.Date
	HistoricalEdgeDateLt  dates.Date
	HistoricalEdgeDateLte dates.Date

	ModifiedDate    []dates.Time
	ModifiedDateGt  dates.Time
	ModifiedDateGte dates.Time
	ModifiedDateLt  dates.Time
	ModifiedDateLte dates.Time

	IsActive *bool // nil = not filtered

	FilterExp string
	Page      int
	PageSize  int // default 5000
	Paginate  bool
	Raw       bool
}

var demandSchema = table.Schema{
	{Name: "seriesName", Type: table.String},
	{Name: "commodity", Type: table.String},
	{Name: "vintageDate", Type: table.Date},
	{Name: "reportForDate", Type: table.Date},
	{Name: "historicalEdgeDate", Type: table.Date},
	{Name: "modifiedDate", Type: table.DateTime},
}

func demandQuery(p DemandParams) spgci.Query {
	q := spgci.NewQuery().
		In("sector", spgci.Strings(p.Sector...)...).
		In("commodity", spgci.Strings(p.Commodity...)...).
		In("productType", spgci.Strings(p.ProductType...)...).
		In("outlookHorizon", spgci.Strings(p.OutlookHorizon...)...).
		In("seriesName", spgci.Strings(p.SeriesName...)...).
		In("fromRegion", spgci.Strings(p.FromRegion...)...).
		In("region", spgci.Strings(p.Region...)...).
		In("country", spgci.Strings(p.Country...)...).
		In("concept", spgci.Strings(p.Concept...)...).
		In("frequency", spgci.Strings(p.Frequency...)...).
		In("uom", spgci.Strings(p.UOM...)...).
		In("vintageDate", spgci.Dates(p.VintageDate...)...).
		Gt("vintageDate", spgci.Date(p.VintageDateGt)).
		Gte("vintageDate", spgci.Date(p.VintageDateGte)).
		Lt("vintageDate", spgci.Date(p.VintageDateLt)).
		Lte("vintageDate", spgci.Date(p.VintageDateLte)).
		In("reportForDate", spgci.Dates(p.ReportForDate...)...).
		Gt("reportForDate", spgci.Date(p.ReportForDateGt)).
		Gte("reportForDate", spgci.Date(p.ReportForDateGte)).
		Lt("reportForDate", spgci.Date(p.ReportForDateLt)).
		Lte("reportForDate", spgci.Date(p.ReportForDateLte)).
		In("historicalEdgeDate", spgci.Dates(p.HistoricalEdgeDate...)...).
		Gt("historicalEdgeDate", spgci.Date(p.HistoricalEdgeDateGt)).
		Gte("historicalEdgeDate", spgci.Date(p.HistoricalEdgeDateGte)).
		Lt("historicalEdgeDate", spgci.Date(p.HistoricalEdgeDateLt)).
		Lte("historicalEdgeDate", spgci.Date(p.HistoricalEdgeDateLte)).
		In("modifiedDate", spgci.Times(p.ModifiedDate...)...).
		Gt("modifiedDate", spgci.Time(p.ModifiedDateGt)).
		Gte("modifiedDate", spgci.Time(p.ModifiedDateGte)).
		Lt("modifiedDate", spgci.Time(p.ModifiedDateLt)).
		Lte("modifiedDate", spgci.Time(p.ModifiedDateLte))
	if p.IsActive != nil {
		q = q.Equal("isActive", spgci.Bool(*p.IsActive))
	}
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	return q
}

func demandRequest(path string, p DemandParams) spgci.Request {
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = 5000
	}
	return spgci.Request{
		Path:     path,
		Query:    demandQuery(p),
		Page:     p.Page,
		PageSize: pageSize,
		Paginate: p.Paginate,
		Raw:      p.Raw,
		Schema:   demandSchema,
	}
}

// Demand fetches refined-product demand series across vintages.
func Demand(ctx context.Context, p DemandParams) (*spgci.Response, error) {
	return spgci.GetData(ctx, demandRequest(basePath+"/demand", p))
}

// DemandLatest fetches the latest vintage of the refined-product demand
// series.
func DemandLatest(ctx context.Context, p DemandParams) (*spgci.Response, error) {
	return spgci.GetData(ctx, demandRequest(basePath+"/demand/latest", p))
}
