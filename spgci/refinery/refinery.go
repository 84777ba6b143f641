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

// Package refinery implements the World Refinery Database dataset: refinery
// capacity, runs and yields. These endpoints speak the OData dialect:
// `$filter` expressions, `$skip` offsets and `$expand`-ed related entities.
package refinery

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/spgci/spgci-go/spgci"
	"github.com/spgci/spgci-go/table"
	"github.com/stockparfait/errors"
)

const basePath = "odata/refinery-data/v2.2"

// Params are the filters shared by the Capacity, Runs and Yields operations.
// List-valued fields match any of their elements; empty fields are not sent.
type Params struct {
	Year             []int
	YearGt           int
	YearGte          int
	YearLt           int
	YearLte          int
	Quarter          []int
	RefineryID       []int
	Owner            []string
	CapacityID       []int
	CapacityStatusID []int
	ProcessUnit      []string
	Country          []string
	Region           []string

	FilterExp string
	Skip      int
	PageSize  int // default 1000
	Paginate  bool
	Raw       bool
}

func (p Params) query() spgci.Query {
	q := spgci.NewODataQuery().
		In("Year", spgci.Ints(p.Year...)...).
		In("Quarter", spgci.Ints(p.Quarter...)...).
		In("RefineryId", spgci.Ints(p.RefineryID...)...).
		In("Owner/Name", spgci.Strings(p.Owner...)...).
		In("CapacityId", spgci.Ints(p.CapacityID...)...).
		In("CapacityStatusId", spgci.Ints(p.CapacityStatusID...)...).
		In("ProcessUnit/Name", spgci.Strings(p.ProcessUnit...)...).
		In("Refinery/Country/Name", spgci.Strings(p.Country...)...).
		In("Refinery/Region/Name", spgci.Strings(p.Region...)...).
		Gt("year", spgci.Int(p.YearGt)).
		Gte("year", spgci.Int(p.YearGte)).
		Lt("year", spgci.Int(p.YearLt)).
		Lte("year", spgci.Int(p.YearLte))
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	return q
}

// records reads the OData "value" array, dropping the "@odata" annotation
// keys.
func records(body []byte) ([]table.Record, error) {
	var page struct {
		Value []table.Record `json:"value"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Annotate(err, "failed to parse OData page")
	}
	for _, r := range page.Value {
		for k := range r {
			if strings.Contains(k, "@odata") {
				delete(r, k)
			}
		}
	}
	return page.Value, nil
}

func get(ctx context.Context, endpoint string, p Params) (*spgci.Response, error) {
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = 1000
	}
	page := 0
	if p.Skip > 0 {
		page = p.Skip/pageSize + 1
	}
	return spgci.GetData(ctx, spgci.Request{
		Path:  basePath + "/" + endpoint,
		Query: p.query(),
		Extra: url.Values{
			"$count":  []string{"true"},
			"$expand": []string{"*"},
		},
		OData:      true,
		Page:       page,
		PageSize:   pageSize,
		Paginate:   p.Paginate,
		Raw:        p.Raw,
		RecordsFn:  records,
		PaginateFn: spgci.PaginateOData,
	})
}

// Capacity fetches refinery capacity by process unit and quarter.
func Capacity(ctx context.Context, p Params) (*spgci.Response, error) {
	return get(ctx, "capacity", p)
}

// Runs fetches actual refinery runs by process unit and quarter.
func Runs(ctx context.Context, p Params) (*spgci.Response, error) {
	return get(ctx, "runs", p)
}

// Yields fetches refinery production yields by product and quarter.
func Yields(ctx context.Context, p Params) (*spgci.Response, error) {
	return get(ctx, "yields", p)
}
