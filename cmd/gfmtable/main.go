// Copyright 2023 Matthew P. Dargan. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Gfmtable converts Markdown documents with pipe tables to HTML.
//
// Usage:
//
//	gfmtable [flags] [file ...]
//
// With no files it reads standard input. The flags are:
//
//	-config file
//		read settings from a JSON file; flags given on the command line win
//	-output html|events|tree
//		write HTML, the event list or the block tree
//	-no-indented-code
//		treat indented lines as paragraph text
//	-no-tables
//		treat pipe tables as paragraph text
//	-stats
//		log the size and table count of each input
//	-v
//		log progress
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"
	"github.com/pkg/errors"

	"github.com/matthewdargan/gfmtable"
	"github.com/matthewdargan/gfmtable/scan"
)

func main() {
	configPath := flag.String("config", "", "read settings from a JSON `file`")
	output := flag.String("output", outputHTML, "write html, events or tree")
	noCode := flag.Bool("no-indented-code", false, "treat indented lines as paragraph text")
	noTables := flag.Bool("no-tables", false, "treat pipe tables as paragraph text")
	stats := flag.Bool("stats", false, "log the size and table count of each input")
	verbose := flag.Bool("v", false, "log progress")
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("gfmtable: ")

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = configFromFile(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.Output = *output
		case "no-indented-code":
			cfg.DisableIndentedCode = *noCode
		case "no-tables":
			cfg.DisableTables = *noTables
		}
	})
	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}
	pp.ColoringEnabled = false

	names := flag.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}
	for _, name := range names {
		text, err := read(name)
		if err != nil {
			log.Fatal(err)
		}
		if *verbose {
			log.Printf("converting %s", name)
		}
		d, err := convert(os.Stdout, text, cfg)
		if err != nil {
			log.Fatal(errors.Wrapf(err, "could not convert %s", name))
		}
		if *stats {
			log.Print(summary(name, text, d))
		}
	}
}

func read(name string) (string, error) {
	var (
		b   []byte
		err error
	)
	if name == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return "", errors.Wrap(err, "could not read input")
	}
	return string(b), nil
}

// convert parses text and writes it to w in the configured output form.
func convert(w io.Writer, text string, cfg configuration) (*gfmtable.Document, error) {
	d, err := gfmtable.Parse(text, cfg.options())
	if err != nil {
		return nil, err
	}
	switch cfg.Output {
	case outputEvents:
		err = writeEvents(w, d)
	case outputTree:
		_, err = pp.Fprintln(w, d.Root)
	default:
		if err = d.WriteHTML(w); err == nil {
			_, err = fmt.Fprintln(w)
		}
	}
	return d, err
}

// writeEvents writes one event per line, indented by nesting depth.
func writeEvents(w io.Writer, d *gfmtable.Document) error {
	depth := 0
	for _, ev := range d.Events {
		if ev.Kind == scan.Exit {
			depth--
		}
		line, col := d.Source.Position(ev.Token.Start)
		if _, err := fmt.Fprintf(w, "%d:%d\t%s%s\n", line, col, strings.Repeat("  ", depth), ev); err != nil {
			return errors.Wrap(err, "could not write events")
		}
		if ev.Kind == scan.Enter {
			depth++
		}
	}
	return nil
}

func summary(name string, text string, d *gfmtable.Document) string {
	var rows int
	tables := d.Tables()
	for _, t := range tables {
		rows += len(t.Rows)
	}
	return fmt.Sprintf("%s: %s, %s tables, %s body rows",
		name, humanize.Bytes(uint64(len(text))), humanize.Comma(int64(len(tables))), humanize.Comma(int64(rows)))
}
