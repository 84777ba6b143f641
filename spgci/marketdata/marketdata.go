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

// Package marketdata implements the Market Data dataset: price assessments
// by symbol or Market Data Category (MDC), and the symbol reference data.
package marketdata

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/spgci/spgci-go/dates"
	"github.com/spgci/spgci-go/spgci"
	"github.com/spgci/spgci-go/table"
	"github.com/stockparfait/errors"
)

const (
	valuePath = "market-data/v3/value"
	refPath   = "market-data/reference-data/v3"
	// Extra delta fields requested for current assessments.
	mddFields = "deltaPrice,deltaPercent,pValue,pDate"
)

// ContractType of a symbol.
type ContractType string

// Values of ContractType.
const (
	Spot                 ContractType = "spot"
	Forward              ContractType = "forward"
	Future               ContractType = "future"
	Swap                 ContractType = "swap"
	Strip                ContractType = "strip"
	CFD                  ContractType = "cfd"
	Index                ContractType = "index"
	OfficialSellingPrice ContractType = "official selling price"
	Yield                ContractType = "yield"
	Contract             ContractType = "contract"
	ESS                  ContractType = "ess"
	Prompt               ContractType = "prompt"
	Statistic            ContractType = "statistic"
	EFP                  ContractType = "efp"
	Netback              ContractType = "netback"
	EFS                  ContractType = "efs"
	Rack                 ContractType = "rack"
)

// AssessmentFrequency of a symbol.
type AssessmentFrequency string

// Values of AssessmentFrequency.
const (
	Intraday         AssessmentFrequency = "Intraday"
	Daily            AssessmentFrequency = "Daily (7 day)"
	DailyWeekday     AssessmentFrequency = "Daily (weekday)"
	DailyBidweekOnly AssessmentFrequency = "Daily (bidweek only)"
	SemiWeekly       AssessmentFrequency = "Semi-weekly"
	Weekly           AssessmentFrequency = "Weekly"
	SemiMonthly      AssessmentFrequency = "Semi-monthly"
	Monthly          AssessmentFrequency = "Monthly"
	EveryOtherMonth  AssessmentFrequency = "Every other month"
	Quarterly        AssessmentFrequency = "Quarterly"
	SemiAnnual       AssessmentFrequency = "Semi-annual"
	Yearly           AssessmentFrequency = "Yearly"
)

func defaultPageSize(requested, dflt int) int {
	if requested > 0 {
		return requested
	}
	return dflt
}

var assessmentSchema = table.Schema{
	{Name: "symbol", Type: table.String},
	{Name: "bate", Type: table.String},
	{Name: "value", Type: table.Double},
	{Name: "assessDate", Type: table.DateTime},
	{Name: "modDate", Type: table.DateTime},
	{Name: "pDate", Type: table.DateTime},
}

// assessmentRecords expands the nested assessment pages: each result is
// {"symbol": S, "data": [...]}, and the records of interest are the elements
// of "data" with the symbol attached. Keys under the "change" object come out
// with the "change." prefix stripped.
func assessmentRecords(body []byte) ([]table.Record, error) {
	var page struct {
		Results []struct {
			Symbol string         `json:"symbol"`
			Data   []table.Record `json:"data"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Annotate(err, "failed to parse assessments page")
	}
	var records []table.Record
	for _, r := range page.Results {
		for _, d := range r.Data {
			rec := make(table.Record)
			for k, v := range table.Flatten(d) {
				rec[strings.TrimPrefix(k, "change.")] = v
			}
			rec["symbol"] = r.Symbol
			records = append(records, rec)
		}
	}
	return records, nil
}

// AssessmentsBySymbolCurrentParams are the filters of
// AssessmentsBySymbolCurrent.
type AssessmentsBySymbolCurrentParams struct {
	Symbol []string
	Bate   []string

	FilterExp string
	Page      int
	PageSize  int // default 10000
	Paginate  bool
	Raw       bool
}

// AssessmentsBySymbolCurrent fetches the latest assessments of the given
// symbols, including the delta fields against the previous assessment.
func AssessmentsBySymbolCurrent(ctx context.Context, p AssessmentsBySymbolCurrentParams) (*spgci.Response, error) {
	q := spgci.NewQuery().
		In("symbol", spgci.Strings(p.Symbol...)...).
		In("bate", spgci.Strings(p.Bate...)...)
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	return spgci.GetData(ctx, spgci.Request{
		Path:      valuePath + "/current/symbol",
		Query:     q,
		Extra:     url.Values{"field": []string{mddFields}},
		Page:      p.Page,
		PageSize:  defaultPageSize(p.PageSize, 10000),
		Paginate:  p.Paginate,
		Raw:       p.Raw,
		Schema:    assessmentSchema,
		RecordsFn: assessmentRecords,
	})
}

// AssessmentsBySymbolHistoricalParams are the filters of
// AssessmentsBySymbolHistorical.
type AssessmentsBySymbolHistoricalParams struct {
	Symbol []string
	Bate   []string

	AssessDate    dates.Date
	AssessDateGt  dates.Date
	AssessDateGte dates.Date
	AssessDateLt  dates.Date
	AssessDateLte dates.Date

	ModifiedDate    dates.Date
	ModifiedDateGt  dates.Date
	ModifiedDateGte dates.Date
	ModifiedDateLt  dates.Date
	ModifiedDateLte dates.Date

	FilterExp string
	Page      int
	PageSize  int // default 10000
	Paginate  bool
	Raw       bool
}

// AssessmentsBySymbolHistorical fetches historical assessments of the given
// symbols, optionally restricted by assessment or modification date.
func AssessmentsBySymbolHistorical(ctx context.Context, p AssessmentsBySymbolHistoricalParams) (*spgci.Response, error) {
	q := spgci.NewQuery().
		In("symbol", spgci.Strings(p.Symbol...)...).
		In("bate", spgci.Strings(p.Bate...)...).
		Equal("assessDate", spgci.Date(p.AssessDate)).
		Gt("assessDate", spgci.Date(p.AssessDateGt)).
		Gte("assessDate", spgci.Date(p.AssessDateGte)).
		Lt("assessDate", spgci.Date(p.AssessDateLt)).
		Lte("assessDate", spgci.Date(p.AssessDateLte)).
		Equal("modDate", spgci.Date(p.ModifiedDate)).
		Gt("modDate", spgci.Date(p.ModifiedDateGt)).
		Gte("modDate", spgci.Date(p.ModifiedDateGte)).
		Lt("modDate", spgci.Date(p.ModifiedDateLt)).
		Lte("modDate", spgci.Date(p.ModifiedDateLte))
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	return spgci.GetData(ctx, spgci.Request{
		Path:      valuePath + "/history/symbol",
		Query:     q,
		Page:      p.Page,
		PageSize:  defaultPageSize(p.PageSize, 10000),
		Paginate:  p.Paginate,
		Raw:       p.Raw,
		Schema:    assessmentSchema,
		RecordsFn: assessmentRecords,
	})
}

// AssessmentsByMDCCurrentParams are the filters of AssessmentsByMDCCurrent.
type AssessmentsByMDCCurrentParams struct {
	MDC  string // required
	Bate []string

	FilterExp string
	Page      int
	PageSize  int // default 10000
	Paginate  bool
	Raw       bool
}

// AssessmentsByMDCCurrent fetches the latest assessments of all symbols in a
// Market Data Category. See MDCs for the category list.
func AssessmentsByMDCCurrent(ctx context.Context, p AssessmentsByMDCCurrentParams) (*spgci.Response, error) {
	if p.MDC == "" {
		return nil, errors.Reason("MDC is required")
	}
	q := spgci.NewQuery().
		Equal("MDC", spgci.String(p.MDC)).
		In("bate", spgci.Strings(p.Bate...)...)
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	return spgci.GetData(ctx, spgci.Request{
		Path:      valuePath + "/current/mdc",
		Query:     q,
		Extra:     url.Values{"field": []string{mddFields}},
		Page:      p.Page,
		PageSize:  defaultPageSize(p.PageSize, 10000),
		Paginate:  p.Paginate,
		Raw:       p.Raw,
		Schema:    assessmentSchema,
		RecordsFn: assessmentRecords,
	})
}

// AssessmentsByMDCHistoricalParams are the filters of
// AssessmentsByMDCHistorical.
type AssessmentsByMDCHistoricalParams struct {
	MDC  string // required
	Bate []string

	AssessDate    dates.Date
	AssessDateGt  dates.Date
	AssessDateGte dates.Date
	AssessDateLt  dates.Date
	AssessDateLte dates.Date

	ModifiedDate    dates.Date
	ModifiedDateGt  dates.Date
	ModifiedDateGte dates.Date
	ModifiedDateLt  dates.Date
	ModifiedDateLte dates.Date

	FilterExp string
	Page      int
	PageSize  int // default 10000
	Paginate  bool
	Raw       bool
}

// AssessmentsByMDCHistorical fetches historical assessments of all symbols
// in a Market Data Category.
func AssessmentsByMDCHistorical(ctx context.Context, p AssessmentsByMDCHistoricalParams) (*spgci.Response, error) {
	if p.MDC == "" {
		return nil, errors.Reason("MDC is required")
	}
	q := spgci.NewQuery().
		Equal("MDC", spgci.String(p.MDC)).
		In("bate", spgci.Strings(p.Bate...)...).
		Equal("assessDate", spgci.Date(p.AssessDate)).
		Gt("assessDate", spgci.Date(p.AssessDateGt)).
		Gte("assessDate", spgci.Date(p.AssessDateGte)).
		Lt("assessDate", spgci.Date(p.AssessDateLt)).
		Lte("assessDate", spgci.Date(p.AssessDateLte)).
		Equal("modDate", spgci.Date(p.ModifiedDate)).
		Gt("modDate", spgci.Date(p.ModifiedDateGt)).
		Gte("modDate", spgci.Date(p.ModifiedDateGte)).
		Lt("modDate", spgci.Date(p.ModifiedDateLt)).
		Lte("modDate", spgci.Date(p.ModifiedDateLte))
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	return spgci.GetData(ctx, spgci.Request{
		Path:      valuePath + "/history/mdc",
		Query:     q,
		Page:      p.Page,
		PageSize:  defaultPageSize(p.PageSize, 10000),
		Paginate:  p.Paginate,
		Raw:       p.Raw,
		Schema:    assessmentSchema,
		RecordsFn: assessmentRecords,
	})
}

// SymbolsParams are the filters of the Symbols search.
type SymbolsParams struct {
	Q                   string // free-text search
	Commodity           []string
	ContractType        []ContractType
	Currency            []string
	UOM                 []string
	Symbol              []string
	DeliveryRegionBasis []string
	CurveCode           []string
	MDC                 []string
	AssessmentFrequency []AssessmentFrequency

	FilterExp string
	Page      int
	PageSize  int // default 1000
	Paginate  bool
	Raw       bool
}

var symbolsSchema = table.Schema{
	{Name: "symbol", Type: table.String},
	{Name: "description", Type: table.String},
}

// Symbols searches the symbol reference data.
func Symbols(ctx context.Context, p SymbolsParams) (*spgci.Response, error) {
	contractTypes := make([]spgci.Value, len(p.ContractType))
	for i, v := range p.ContractType {
		contractTypes[i] = spgci.String(v)
	}
	frequencies := make([]spgci.Value, len(p.AssessmentFrequency))
	for i, v := range p.AssessmentFrequency {
		frequencies[i] = spgci.String(v)
	}
	q := spgci.NewQuery().
		In("commodity", spgci.Strings(p.Commodity...)...).
		In("contract_type", contractTypes...).
		In("currency", spgci.Strings(p.Currency...)...).
		In("uom", spgci.Strings(p.UOM...)...).
		In("delivery_region_basis", spgci.Strings(p.DeliveryRegionBasis...)...).
		In("curve_code", spgci.Strings(p.CurveCode...)...).
		In("symbol", spgci.Strings(p.Symbol...)...).
		In("mdc", spgci.Strings(p.MDC...)...).
		In("assessment_frequency", frequencies...)
	if p.FilterExp != "" {
		q = q.Extra(p.FilterExp)
	}
	return spgci.GetData(ctx, spgci.Request{
		Path:       refPath + "/search",
		Query:      q,
		Q:          p.Q,
		Page:       p.Page,
		PageSize:   defaultPageSize(p.PageSize, 1000),
		Paginate:   p.Paginate,
		Raw:        p.Raw,
		Schema:     symbolsSchema,
		PaginateFn: spgci.PaginateTotalPages,
	})
}

// MDCsParams are the parameters of the MDCs listing.
type MDCsParams struct {
	// All lists every Market Data Category instead of only the subscribed
	// ones.
	All bool
	Raw bool
}

// MDCs lists the Market Data Categories, by default only the subscribed
// ones. The endpoint is not paginated.
func MDCs(ctx context.Context, p MDCsParams) (*spgci.Response, error) {
	return spgci.GetData(ctx, spgci.Request{
		Path: refPath + "/mdc",
		Extra: url.Values{
			"subscribed_only": []string{strconv.FormatBool(!p.All)},
		},
		Raw:        p.Raw,
		PaginateFn: spgci.PaginateNone,
	})
}
