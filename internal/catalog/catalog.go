// Package catalog loads seed catalogues and stores them through a product
// repository.
package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for catalogue names whose extension is not
// .json, .yaml or .yml (optionally followed by .gz).
var ErrUnsupportedFormat = errors.New("unsupported catalogue format")

// Loader defines the interface for loading catalogue files.
type Loader interface {
	// Load reads the catalogue at location and returns its products.
	Load(ctx context.Context, location string) ([]model.ProductInput, error)
}

// Decode reads a catalogue from r. The format is chosen from name: a ".gz"
// suffix means gzip, then ".json" or ".yaml"/".yml". Both formats hold a list
// of objects with "name" and "price".
func Decode(name string, r io.Reader) ([]model.ProductInput, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
		lower = strings.TrimSuffix(lower, ".gz")
	}

	var products []model.ProductInput
	switch path.Ext(lower) {
	case ".json":
		if err := json.NewDecoder(r).Decode(&products); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode JSON catalogue %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(&products); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML catalogue %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	if products == nil {
		products = []model.ProductInput{}
	}
	return products, nil
}

// Seed loads every location concurrently, then creates the products through
// repo in location order. Nothing is stored when any location fails to load;
// a failed create stops seeding and the count of created products is
// returned with the error.
func Seed(ctx context.Context, repo repository.ProductRepository, loader Loader, locations []string, logger zerolog.Logger) (int, error) {
	logger = logger.With().Str("component", "catalog-seed").Logger()

	logger.Info().
		Int("file_count", len(locations)).
		Msg("loading catalogues")

	type loadResult struct {
		index    int
		products []model.ProductInput
		err      error
	}

	resultChan := make(chan loadResult, len(locations))
	var wg sync.WaitGroup

	for i, location := range locations {
		wg.Add(1)
		go func(index int, location string) {
			defer wg.Done()

			products, err := loader.Load(ctx, location)
			resultChan <- loadResult{index: index, products: products, err: err}
		}(i, location)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	results := make([]loadResult, len(locations))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("location", locations[i]).
				Msg("failed to load catalogue")
			return 0, fmt.Errorf("failed to load catalogue %s: %w", locations[i], result.err)
		}
	}

	created := 0
	for i, result := range results {
		for _, input := range result.products {
			if _, err := repo.Create(ctx, input); err != nil {
				return created, fmt.Errorf("failed to seed product from %s: %w", locations[i], err)
			}
			created++
		}

		logger.Info().
			Str("location", locations[i]).
			Int("products", len(result.products)).
			Msg("catalogue seeded")
	}

	return created, nil
}
