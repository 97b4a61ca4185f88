// Command storectl читает и правит файлы данных хранилища без запуска сервиса.
//
//	storectl -kind customer -file data/customers.csv list
//	storectl -kind order -file data/orders.json get -id 1001
//	storectl -kind product -file data/products.xml convert -to csv -out data/products.csv
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/flatstore/internal/domain"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file"
	"github.com/vladislavdragonenkov/flatstore/internal/storage/file/codec"
)

const usage = `usage: storectl -kind <order|basket|customer|product> -file <path> [flags] <command> [command flags]

commands:
  list                          print all entities, one JSON object per line
  get -id <id>                  print one entity
  delete -id <id>               delete an entity and rewrite the file
  next-id                       print the next available id
  convert -to <format> -out <p> write all entities into another file/format
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fail("%v", err)
	}
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

type globalFlags struct {
	kind    string
	path    string
	format  string
	header  string
	verbose bool
}

func run(args []string, stdout, stderr io.Writer) error {
	var g globalFlags
	fs := flag.NewFlagSet("storectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { _, _ = io.WriteString(stderr, usage) }
	fs.StringVar(&g.kind, "kind", "", "entity kind: order|basket|customer|product")
	fs.StringVar(&g.path, "file", "", "path to the data file")
	fs.StringVar(&g.format, "format", "", "file format: json|xml|csv (default: from file extension)")
	fs.StringVar(&g.header, "header", file.DefaultCSVHeader, "CSV header line")
	fs.BoolVar(&g.verbose, "v", false, "log store activity to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if g.path == "" || fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	logger := newLogger(stderr, g.verbose)
	c, err := openCommand(domain.Kind(strings.ToLower(g.kind)), logger)
	if err != nil {
		return err
	}

	format := resolveFormat(g.format, g.path)
	if err := c.open(format, g.path, storeOptions(logger, g.header)...); err != nil {
		return err
	}
	return dispatch(c, fs.Arg(0), fs.Args()[1:], stdout, stderr, logger)
}

func dispatch(c command, name string, args []string, stdout, stderr io.Writer, logger *log.Entry) error {
	sub := flag.NewFlagSet(name, flag.ContinueOnError)
	sub.SetOutput(stderr)
	id := sub.Int64("id", domain.NoID, "entity id")
	to := sub.String("to", "", "target format for convert")
	out := sub.String("out", "", "target path for convert")
	toHeader := sub.String("to-header", file.DefaultCSVHeader, "CSV header of the converted file")
	if err := sub.Parse(args); err != nil {
		return err
	}

	switch name {
	case "list":
		return c.list(stdout)
	case "get":
		return c.get(*id, stdout)
	case "delete":
		if err := c.delete(*id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "deleted %d\n", *id)
		return nil
	case "next-id":
		_, _ = fmt.Fprintln(stdout, c.nextID())
		return nil
	case "convert":
		if *to == "" || *out == "" {
			return fmt.Errorf("%w: convert requires -to and -out", errUsage)
		}
		if _, err := os.Stat(*out); err == nil {
			return fmt.Errorf("%s already exists", *out)
		}
		n, err := c.convert(codec.Format(strings.ToLower(*to)), *out, storeOptions(logger, *toHeader)...)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "converted %d entities to %s\n", n, *out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func newLogger(w io.Writer, verbose bool) *log.Entry {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(log.WarnLevel)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return log.NewEntry(logger).WithField("component", "storectl")
}

func storeOptions(logger *log.Entry, header string) []file.Option {
	return []file.Option{
		file.WithLogger(logger),
		file.WithCSVHeader(header),
	}
}

func resolveFormat(explicit, path string) codec.Format {
	if explicit != "" {
		return codec.Format(strings.ToLower(explicit))
	}
	return codec.Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

func printJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
