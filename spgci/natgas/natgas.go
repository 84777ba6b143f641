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

// Package natgas implements the North America natural gas supply-demand
// dataset: pipeline reference data and pipeline flows.
package natgas

import (
	"context"

	"github.com/spgci/spgci-go/dates"
	"github.com/spgci/spgci-go/spgci"
	"github.com/spgci/spgci-go/table"
)

const basePath = "analytics/natural-gas/north-america/supply-demand/v1"

// FacilityType is the type of a pipeline point.
type FacilityType string

// Values of FacilityType.
const (
	Compressor        FacilityType = "Compressor"
	GasProcessingUnit FacilityType = "Gas Processing Unit"
	GatheringSystem   FacilityType = "Gathering System"
	Industrial        FacilityType = "Industrial"
	Interconnect      FacilityType = "Interconnect"
	LDC               FacilityType = "LDC"
	LNG               FacilityType = "LNG"
	PowerPlant        FacilityType = "Power Plant"
	Production        FacilityType = "Production"
	Segment           FacilityType = "Segment"
	Storage           FacilityType = "Storage"
	StorageParkLoan   FacilityType = "Storage Park/Loan"
	EORCogen          FacilityType = "Enhanced Oil Recovery/Cogen"
)

// PipelinesParams are the filters of the Pipelines operation. List-valued
// fields match any of their elements; empty fields are not sent.
type PipelinesParams struct {
	PipelineName        []string
	PipelineID          []int
	PointType           []string
	PointName           []string
	DRNNumber           []string
	County              []string
	State               []string
	Country             []string
	ConnectingPartyName []string
	FacilityType        []FacilityType

	Q         string // free-text search across the reference fields
	FilterExp string // handcrafted filter expression, AND-joined
	Page      int
	PageSize  int // default 2000
	Paginate  bool
	Raw       bool
}

func facilityTypes(vs []FacilityType) []spgci.Value {
	out := make([]spgci.Value, len(vs))
	for i, v := range vs {
		out[i] = spgci.String(v)
	}
	return out
}

// Pipelines fetches pipeline reference data: points, counterparties and
// facility types.
func Pipelines(ctx context.Context, p PipelinesParams) (*spgci.Response, error) {
	q := spgci.NewQuery().
		In("pipelineName", spgci.Strings(p.PipelineName...)...).
		In("pipelineId", spgci.Ints(p.PipelineID...)...).
		In("pointType", spgci.Strings(p.PointType...)...).
		In("pointName", spgci.Strings(p.PointName...)...).
		In("drnNumber", spgci.Strings(p.DRNNumber...)...).
		In("county", spgci.Strings(p.County...)...).
		In("state", spgci.Strings(p.State...)...).
		In("country", spgci.Strings(p.Country...)...).
		In("connectingPartyName", spgci.Strings(p.ConnectingPartyName...)...).
		In("facilityType", facilityTypes(p.FacilityType)...)
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = 2000
	}
	return spgci.GetData(ctx, spgci.Request{
		Path:       basePath + "/pipeline-reference-data",
		Query:      q,
		Q:          p.Q,
		Page:       p.Page,
		PageSize:   pageSize,
		Paginate:   p.Paginate,
		Raw:        p.Raw,
		PaginateFn: spgci.PaginateCountSize,
	})
}

// PipelineFlowsParams are the filters of the PipelineFlows operation.
type PipelineFlowsParams struct {
	GasDate        []dates.Date
	GasDateGt      dates.Date
	GasDateGte     dates.Date
	GasDateLt      dates.Date
	GasDateLte     dates.Date
	PipelineID     []int
	ComponentID    []int
	PointName      []string
	State          []string
	County         []string
	Country        []string
	FacilityType   []FacilityType
	NomCycle       []string
	LocationTypeID []int
	FlowDirection  []string
	DataActive     *bool // nil = not filtered
	DataSource     []string

	FilterExp string
	Page      int
	PageSize  int // default 2000
	Paginate  bool
	Raw       bool
}

var flowsSchema = table.Schema{
	{Name: "gasDate", Type: table.DateTime},
	{Name: "pipelineId", Type: table.Integer},
	{Name: "pointName", Type: table.String},
	{Name: "validFrom", Type: table.DateTime},
	{Name: "validTo", Type: table.DateTime},
	{Name: "createDate", Type: table.DateTime},
	{Name: "modifiedDate", Type: table.DateTime},
}

// PipelineFlows fetches scheduled pipeline flows by point and gas day.
func PipelineFlows(ctx context.Context, p PipelineFlowsParams) (*spgci.Response, error) {
	q := spgci.NewQuery().
		In("gasDate", spgci.Dates(p.GasDate...)...).
		In("pipelineId", spgci.Ints(p.PipelineID...)...).
		In("componentId", spgci.Ints(p.ComponentID...)...).
		In("pointName", spgci.Strings(p.PointName...)...).
		In("state", spgci.Strings(p.State...)...).
		In("county", spgci.Strings(p.County...)...).
		In("country", spgci.Strings(p.Country...)...).
		In("facilityType", facilityTypes(p.FacilityType)...).
		In("nominationCycle", spgci.Strings(p.NomCycle...)...).
		In("locationTypeId", spgci.Ints(p.LocationTypeID...)...).
		In("flowDirection", spgci.Strings(p.FlowDirection...)...).
		In("dataSource", spgci.Strings(p.DataSource...)...).
		Gt("gasDate", spgci.Date(p.GasDateGt)).
		Gte("gasDate", spgci.Date(p.GasDateGte)).
		Lt("gasDate", spgci.Date(p.GasDateLt)).
		Lte("gasDate", spgci.Date(p.GasDateLte))
	if p.DataActive != nil {
		q = q.Equal("dataActive", spgci.Bool(*p.DataActive))
	}
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = 2000
	}
	return spgci.GetData(ctx, spgci.Request{
		Path:       basePath + "/pipeline-flow-data",
		Query:      q,
		Page:       p.Page,
		PageSize:   pageSize,
		Paginate:   p.Paginate,
		Raw:        p.Raw,
		Schema:     flowsSchema,
		PaginateFn: spgci.PaginateCountSize,
	})
}
