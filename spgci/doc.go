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

// Package spgci implements a client for the S&P Global Commodity Insights
// REST API: credential and token management, a typed filter-expression
// builder, and a paginating request executor which normalizes JSON record
// pages into tables.
//
// A typical use:
//
//	cfg := spgci.ConfigFromEnv()
//	client, err := spgci.NewClient(cfg)
//	// handle err
//	ctx = spgci.UseClient(ctx, client)
//	res, err := natgas.Pipelines(ctx, natgas.PipelinesParams{
//	  State:    spgci.Strings("NJ"),
//	  Paginate: true,
//	})
//
// Dataset operations live in the subpackages: marketdata, natgas, oildemand,
// heards and refinery.
package spgci
