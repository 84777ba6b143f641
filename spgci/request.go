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
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/spgci/spgci-go/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
)

// Paginator describes what the first page revealed about the full result.
type Paginator struct {
	HasMore    bool
	TotalPages int
	// Key is the query parameter advancing to the next page: "page" for
	// page-numbered endpoints, "$skip" for offset-based ones.
	Key string
	// Offset indicates that Key carries a record offset rather than a page
	// number.
	Offset bool
}

// PaginateFunc derives a Paginator from the first page's body and the query
// that produced it.
type PaginateFunc func(body []byte, query url.Values) (Paginator, error)

func metadataInt(m map[string]interface{}, keys ...string) (int, bool) {
	for _, k := range keys {
		if f, ok := m[k].(float64); ok {
			return int(f), true
		}
	}
	return 0, false
}

// PaginateTotalPages reads metadata.totalPages (or metadata.total_pages).
func PaginateTotalPages(body []byte, query url.Values) (Paginator, error) {
	var page struct {
		Metadata map[string]interface{} `json:"metadata"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return Paginator{}, errors.Annotate(err, "failed to parse page metadata")
	}
	total, ok := metadataInt(page.Metadata, "totalPages", "total_pages")
	if !ok {
		return Paginator{}, errors.Reason("page metadata carries no total page count")
	}
	return Paginator{HasMore: total > 1, TotalPages: total, Key: "page"}, nil
}

// PaginateCountSize derives the page count from metadata.count and
// metadata.pageSize (or pagesize).
func PaginateCountSize(body []byte, query url.Values) (Paginator, error) {
	var page struct {
		Metadata map[string]interface{} `json:"metadata"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return Paginator{}, errors.Annotate(err, "failed to parse page metadata")
	}
	count, ok := metadataInt(page.Metadata, "count")
	if !ok {
		return Paginator{}, errors.Reason("page metadata carries no record count")
	}
	size, ok := metadataInt(page.Metadata, "pageSize", "pagesize")
	if !ok || size <= 0 {
		return Paginator{}, errors.Reason("page metadata carries no page size")
	}
	total := (count + size - 1) / size
	return Paginator{HasMore: total > 1, TotalPages: total, Key: "page"}, nil
}

// PaginateOData reads @odata.count and pages by $skip offsets of the
// requested page size.
func PaginateOData(body []byte, query url.Values) (Paginator, error) {
	var page map[string]interface{}
	if err := json.Unmarshal(body, &page); err != nil {
		return Paginator{}, errors.Annotate(err, "failed to parse page")
	}
	count, ok := metadataInt(page, "@odata.count")
	if !ok {
		return Paginator{}, errors.Reason("page carries no @odata.count")
	}
	size, err := strconv.Atoi(query.Get("pageSize"))
	if err != nil || size <= 0 {
		return Paginator{}, errors.Reason("query carries no pageSize")
	}
	total := (count + size - 1) / size
	return Paginator{HasMore: total > 1, TotalPages: total, Key: "$skip", Offset: true}, nil
}

// PaginateNone marks an endpoint as single-page.
func PaginateNone(body []byte, query url.Values) (Paginator, error) {
	return Paginator{}, nil
}

// RecordsFunc extracts the records of one page.
type RecordsFunc func(body []byte) ([]table.Record, error)

// RecordsKey extracts the page's records from the named top-level key.
func RecordsKey(key string) RecordsFunc {
	return func(body []byte) ([]table.Record, error) {
		var page map[string]json.RawMessage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, errors.Annotate(err, "failed to parse page")
		}
		raw, ok := page[key]
		if !ok {
			return nil, errors.Reason("page carries no '%s' key", key)
		}
		var records []table.Record
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, errors.Annotate(err, "failed to parse '%s' records", key)
		}
		return records, nil
	}
}

// Records is the default extractor, reading the "results" key.
var Records = RecordsKey("results")

// Request describes one logical data fetch, possibly spanning several pages.
type Request struct {
	Path  string
	Query Query      // filter expression; empty queries send no filter
	Q     string     // free-text search, where the endpoint supports it
	Extra url.Values // extra query parameters (field, groupBy, sort, ...)

	Page     int // first page to fetch; default 1
	PageSize int // default 1000
	Paginate bool
	Raw      bool // return the first page's body undecoded

	OData      bool // use $filter/$skip parameter names
	Schema     table.Schema
	RecordsFn  RecordsFunc  // default: Records
	PaginateFn PaginateFunc // default: PaginateTotalPages
}

func (r *Request) values() url.Values {
	v := url.Values{}
	for k, vs := range r.Extra {
		v[k] = vs
	}
	filter := r.Query.String()
	if r.OData {
		if filter != "" {
			v.Set("$filter", filter)
		}
		v.Set("pageSize", strconv.Itoa(r.PageSize))
		skip := 0
		if r.Page > 1 {
			skip = (r.Page - 1) * r.PageSize
		}
		v.Set("$skip", strconv.Itoa(skip))
		return v
	}
	if filter != "" {
		v.Set("filter", filter)
	}
	if r.Q != "" {
		v.Set("q", r.Q)
	}
	page := r.Page
	if page == 0 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("pageSize", strconv.Itoa(r.PageSize))
	return v
}

// Response is the result of a fetch.
type Response struct {
	Table *table.Table // nil in raw mode
	Body  []byte       // the undecoded payload, raw mode only
	Pages int          // number of pages fetched
}

// GetData executes a Request using the Client from the context. With
// Paginate set, the remaining pages are fetched sequentially and their
// records concatenated in page order; any page failing fails the whole
// fetch. Without it, a multi-page result is truncated to the first page with
// a warning.
func GetData(ctx context.Context, r Request) (*Response, error) {
	c := GetClient(ctx)
	if c == nil {
		return nil, errors.Reason("no client in context; use spgci.UseClient")
	}
	if r.RecordsFn == nil {
		r.RecordsFn = Records
	}
	if r.PaginateFn == nil {
		r.PaginateFn = PaginateTotalPages
	}
	if r.PageSize == 0 {
		r.PageSize = 1000
	}

	query := r.values()
	body, err := c.get(ctx, r.Path, query)
	if err != nil {
		return nil, errors.Annotate(err, "failed to fetch '%s'", r.Path)
	}

	if r.Raw {
		if r.Paginate {
			logging.Warningf(ctx, "cannot paginate with Raw set; returning the first page")
		}
		return &Response{Body: body, Pages: 1}, nil
	}

	records, err := r.RecordsFn(body)
	if err != nil {
		return nil, errors.Annotate(err, "failed to decode records from '%s'", r.Path)
	}
	pager, err := r.PaginateFn(body, query)
	if err != nil {
		return nil, errors.Annotate(err, "failed to read pagination metadata from '%s'", r.Path)
	}

	pages := 1
	switch {
	case pager.HasMore && !r.Paginate:
		logging.Warningf(ctx,
			"fetched page 1 of %d from '%s'; set Paginate to fetch all pages",
			pager.TotalPages, r.Path)
	case pager.HasMore:
		for page := 2; page <= pager.TotalPages; page++ {
			if pager.Offset {
				query.Set(pager.Key, strconv.Itoa((page-1)*r.PageSize))
			} else {
				query.Set(pager.Key, strconv.Itoa(page))
			}
			body, err := c.get(ctx, r.Path, query)
			if err != nil {
				return nil, errors.Annotate(err, "failed to fetch page %d of '%s'",
					page, r.Path)
			}
			more, err := r.RecordsFn(body)
			if err != nil {
				return nil, errors.Annotate(err,
					"failed to decode records from page %d of '%s'", page, r.Path)
			}
			records = append(records, more...)
			pages++
			logging.Infof(ctx, "fetched page %d of %d from '%s'",
				page, pager.TotalPages, r.Path)
		}
	}
	return &Response{Table: table.FromRecords(records, r.Schema), Pages: pages}, nil
}
