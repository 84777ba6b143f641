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

// Command spgci-data fetches a Commodity Insights dataset and prints it as
// text or CSV.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/spgci/spgci-go/spgci"
	"github.com/spgci/spgci-go/spgci/heards"
	"github.com/spgci/spgci-go/spgci/marketdata"
	"github.com/spgci/spgci-go/spgci/natgas"
	"github.com/spgci/spgci-go/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"

	toml "github.com/pelletier/go-toml/v2"
)

type Flags struct {
	Config   string // default: ~/.spgci/config.toml
	Dataset  string // symbols | mdcs | pipelines | heards-markets
	Q        string // free-text search, where supported
	Paginate bool
	CSV      bool
	PageSize int
	Rows     int // max rows to print; 0 = all
	LogLevel logging.Level
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("spgci-data", flag.ContinueOnError)
	fs.StringVar(&flags.Config, "config",
		filepath.Join(os.Getenv("HOME"), ".spgci", "config.toml"),
		"credentials file; environment variables override it")
	fs.StringVar(&flags.Dataset, "dataset", "",
		"dataset to fetch: symbols, mdcs, pipelines, heards-markets")
	fs.StringVar(&flags.Q, "q", "", "free-text search where the dataset supports it")
	fs.BoolVar(&flags.Paginate, "paginate", false, "fetch all pages")
	fs.BoolVar(&flags.CSV, "csv", false, "print CSV instead of text")
	fs.IntVar(&flags.PageSize, "page-size", 0, "records per page; 0 = dataset default")
	fs.IntVar(&flags.Rows, "rows", 0, "max rows to print; 0 = all")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")

	err := fs.Parse(args)
	return &flags, err
}

type Config struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	AppKey   string `toml:"appkey"`
	BaseURL  string `toml:"base_url"`
}

func parseConfig(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sample := `username = "you@example.com"
password = "YourSecretPassword"
`
			err = errors.Annotate(err,
				"config file '%s' does not exist.\nPlease create config file containing:\n%s",
				filePath, sample)
			return nil, err
		} else {
			return nil, errors.Annotate(err,
				"cannot check config file for existence: '%s'", filePath)
		}
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	var c Config
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	return &c, nil
}

// clientConfig merges the config file with the environment; environment
// variables win.
func clientConfig(flags *Flags) (spgci.Config, error) {
	cfg := spgci.ConfigFromEnv()
	if cfg.Username != "" && cfg.Password != "" {
		return cfg, nil
	}
	fileCfg, err := parseConfig(flags.Config)
	if err != nil {
		return spgci.Config{}, errors.Annotate(err, "failed to parse config")
	}
	if cfg.Username == "" {
		cfg.Username = fileCfg.Username
	}
	if cfg.Password == "" {
		cfg.Password = fileCfg.Password
	}
	if cfg.AppKey == "" {
		cfg.AppKey = fileCfg.AppKey
	}
	cfg.BaseURL = fileCfg.BaseURL
	return cfg, nil
}

func fetch(ctx context.Context, flags *Flags) (*spgci.Response, error) {
	switch flags.Dataset {
	case "symbols":
		return marketdata.Symbols(ctx, marketdata.SymbolsParams{
			Q:        flags.Q,
			PageSize: flags.PageSize,
			Paginate: flags.Paginate,
		})
	case "mdcs":
		return marketdata.MDCs(ctx, marketdata.MDCsParams{})
	case "pipelines":
		return natgas.Pipelines(ctx, natgas.PipelinesParams{
			Q:        flags.Q,
			PageSize: flags.PageSize,
			Paginate: flags.Paginate,
		})
	case "heards-markets":
		return heards.Markets(ctx, heards.MarketsParams{
			PageSize: flags.PageSize,
			Paginate: flags.Paginate,
		})
	}
	return nil, errors.Reason(
		"unknown dataset '%s'; expected one of: symbols, mdcs, pipelines, heards-markets",
		flags.Dataset)
}

func run(ctx context.Context, flags *Flags, w io.Writer) error {
	cfg, err := clientConfig(flags)
	if err != nil {
		return err
	}
	client, err := spgci.NewClient(cfg)
	if err != nil {
		return errors.Annotate(err, "failed to create the client")
	}
	ctx = spgci.UseClient(ctx, client)

	res, err := fetch(ctx, flags)
	if err != nil {
		return errors.Annotate(err, "failed to fetch '%s'", flags.Dataset)
	}
	params := table.Params{Rows: flags.Rows}
	if flags.CSV {
		if err := res.Table.WriteCSV(w, params); err != nil {
			return errors.Annotate(err, "failed to write CSV")
		}
		return nil
	}
	if err := res.Table.WriteText(w, params); err != nil {
		return errors.Annotate(err, "failed to write table")
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := run(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
