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

// Package heards implements the structured heards dataset: market
// intelligence items and the markets they cover.
package heards

import (
	"context"

	"github.com/spgci/spgci-go/dates"
	"github.com/spgci/spgci-go/spgci"
	"github.com/spgci/spgci-go/table"
	"github.com/stockparfait/errors"
)

const basePath = "structured-heards/v1"

// HeardsParams are the filters of the Heards operation. Market is required;
// the other fields are optional.
type HeardsParams struct {
	Market    []string // required
	Geography []string
	Commodity []string
	Location  []string
	HeardType []string

	UpdatedDateGt  dates.Date
	UpdatedDateGte dates.Date
	UpdatedDateLt  dates.Date
	UpdatedDateLte dates.Date

	RtpTimestampGt  dates.Date
	RtpTimestampGte dates.Date
	RtpTimestampLt  dates.Date
	RtpTimestampLte dates.Date

	FilterExp string
	Page      int
	PageSize  int // default 1000
	Paginate  bool
	Raw       bool
}

var heardsSchema = table.Schema{
	{Name: "market", Type: table.String},
	{Name: "headline", Type: table.String},
	{Name: "updatedDate", Type: table.DateTime},
	{Name: "rtpTimestamp", Type: table.DateTime},
}

// Heards fetches structured heards for the given markets.
func Heards(ctx context.Context, p HeardsParams) (*spgci.Response, error) {
	if len(p.Market) == 0 {
		return nil, errors.Reason("market is required")
	}
	q := spgci.NewQuery().
		In("geography", spgci.Strings(p.Geography...)...).
		In("commodity", spgci.Strings(p.Commodity...)...).
		In("location", spgci.Strings(p.Location...)...).
		In("market", spgci.Strings(p.Market...)...).
		In("heard_type", spgci.Strings(p.HeardType...)...).
		Gt("updatedDate", spgci.Date(p.UpdatedDateGt)).
		Gte("updatedDate", spgci.Date(p.UpdatedDateGte)).
		Lt("updatedDate", spgci.Date(p.UpdatedDateLt)).
		Lte("updatedDate", spgci.Date(p.UpdatedDateLte)).
		Gt("rtpTimeStamp", spgci.Date(p.RtpTimestampGt)).
		Gte("rtpTimeStamp", spgci.Date(p.RtpTimestampGte)).
		Lt("rtpTimeStamp", spgci.Date(p.RtpTimestampLt)).
		Lte("rtpTimeStamp", spgci.Date(p.RtpTimestampLte))
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = 1000
	}
	return spgci.GetData(ctx, spgci.Request{
		Path:     basePath + "/data",
		Query:    q,
		Page:     p.Page,
		PageSize: pageSize,
		Paginate: p.Paginate,
		Raw:      p.Raw,
		Schema:   heardsSchema,
	})
}

// MarketsParams are the filters of the Markets operation.
type MarketsParams struct {
	Market     []string
	Attributes []string

	FilterExp string
	Page      int
	PageSize  int // default 1000
	Paginate  bool
	Raw       bool
}

// Markets lists the markets covered by the structured heards.
func Markets(ctx context.Context, p MarketsParams) (*spgci.Response, error) {
	q := spgci.NewQuery().
		In("market", spgci.Strings(p.Market...)...).
		In("attributes", spgci.Strings(p.Attributes...)...)
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = 1000
	}
	return spgci.GetData(ctx, spgci.Request{
		Path:       basePath + "/markets",
		Query:      q,
		Page:       p.Page,
		PageSize:   pageSize,
		Paginate:   p.Paginate,
		Raw:        p.Raw,
		PaginateFn: spgci.PaginateCountSize,
	})
}
