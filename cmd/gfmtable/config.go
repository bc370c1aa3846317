// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/matthewdargan/gfmtable"
)

const (
	outputHTML   = "html"
	outputEvents = "events"
	outputTree   = "tree"
)

type configuration struct {
	DisableIndentedCode bool   `json:"disable_indented_code"`
	DisableTables       bool   `json:"disable_tables"`
	Output              string `json:"output"`
}

func defaultConfig() configuration {
	return configuration{Output: outputHTML}
}

func configFromBytes(b []byte) (configuration, error) {
	cfg := defaultConfig()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return configuration{}, errors.Wrap(err, "could not parse config")
	}
	if err := cfg.validate(); err != nil {
		return configuration{}, err
	}
	return cfg, nil
}

func configFromFile(path string) (configuration, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return configuration{}, errors.Wrap(err, "could not open config")
	}
	return configFromBytes(b)
}

func (c configuration) validate() error {
	switch c.Output {
	case outputHTML, outputEvents, outputTree:
		return nil
	}
	return errors.Errorf("unknown output %q", c.Output)
}

func (c configuration) options() gfmtable.Options {
	return gfmtable.Options{
		DisableIndentedCode: c.DisableIndentedCode,
		DisableTables:       c.DisableTables,
	}
}
