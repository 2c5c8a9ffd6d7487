// Command catalogctl manages the product catalogue through the REST API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"product-catalog/internal/apiclient"
	"product-catalog/internal/config"
	"product-catalog/internal/model"
)

const usage = `Usage: catalogctl <command> [flags]

Commands:
  list                         list all products
  create -name N [-price P]    create a product
  update -id ID [-name N] [-price P]
                               update the given fields of a product
  delete -id ID                delete a product

Flags:
`

// CLIConfig holds the command and flags parsed from the command line.
type CLIConfig struct {
	Command string
	BaseURL string
	Timeout time.Duration
	ID      string
	Input   model.ProductInput
	Verbose bool
}

var errUsage = errors.New("invalid usage")

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs parses the subcommand followed by its flags.
func parseArgs(args []string, stderr io.Writer) (*CLIConfig, error) {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return nil, fmt.Errorf("%w: missing command", errUsage)
	}

	cfg := &CLIConfig{Command: args[0]}

	fs := flag.NewFlagSet("catalogctl "+cfg.Command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var name, price string
	fs.StringVar(&cfg.BaseURL, "url", envOr("API_BASE_URL", "http://localhost:8080/products"), "products endpoint")
	fs.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "request timeout")
	fs.BoolVar(&cfg.Verbose, "v", false, "log requests to stderr")
	fs.StringVar(&cfg.ID, "id", "", "product id")
	fs.StringVar(&name, "name", "", "product name")
	fs.StringVar(&price, "price", "", "product price")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	// Only flags given on the command line end up in the payload.
	var priceErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			cfg.Input.Name = model.Ptr(name)
		case "price":
			p, err := strconv.ParseFloat(price, 64)
			if err != nil {
				priceErr = fmt.Errorf("%w: invalid price %q", errUsage, price)
				return
			}
			cfg.Input.Price = model.Ptr(p)
		}
	})
	if priceErr != nil {
		return nil, priceErr
	}

	switch cfg.Command {
	case "list":
	case "create":
		if cfg.Input.Name == nil {
			return nil, fmt.Errorf("%w: create requires -name", errUsage)
		}
	case "update":
		if cfg.ID == "" {
			return nil, fmt.Errorf("%w: update requires -id", errUsage)
		}
	case "delete":
		if cfg.ID == "" {
			return nil, fmt.Errorf("%w: delete requires -id", errUsage)
		}
	default:
		fmt.Fprint(stderr, usage)
		return nil, fmt.Errorf("%w: unknown command %q", errUsage, cfg.Command)
	}

	return cfg, nil
}

func run(ctx context.Context, cfg *CLIConfig, out io.Writer) error {
	level := "error"
	if cfg.Verbose {
		level = "debug"
	}
	logger := config.NewLoggerTo(os.Stderr, config.LoggerConfig{Level: level, Format: "console"})

	client := apiclient.New(cfg.BaseURL,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithLogger(logger),
	)

	var result interface{}
	var err error
	switch cfg.Command {
	case "list":
		result, err = client.GetProducts(ctx)
	case "create":
		result, err = client.CreateProduct(ctx, cfg.Input)
	case "update":
		result, err = client.UpdateProduct(ctx, cfg.ID, cfg.Input)
	case "delete":
		result, err = client.DeleteProduct(ctx, cfg.ID)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", cfg.Command, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
