package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type sampleProduct struct {
	Name  string   `json:"name" yaml:"name"`
	Price *float64 `json:"price,omitempty" yaml:"price,omitempty"`
}

func price(v float64) *float64 { return &v }

// generateSampleCatalog writes seed catalogues in every format the loader
// accepts. Point SEED_FILES at them, e.g.
// SEED_FILES=data/catalog/coffee.json,data/catalog/tea.yaml.gz
func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	catalogs := map[string][]sampleProduct{
		"coffee.json": {
			{Name: "Espresso", Price: price(1.20)},
			{Name: "Latte", Price: price(2.45)},
			{Name: "Cortado", Price: price(1.80)},
		},
		"tea.yaml.gz": {
			{Name: "Green tea", Price: price(1.50)},
			{Name: "Rooibos"},
		},
		"pastries.yml": {
			{Name: "Croissant", Price: price(1.95)},
			{Name: "Palmera", Price: price(1.60)},
		},
		"seasonal.json.gz": {
			{Name: "Pumpkin latte", Price: price(3.10)},
		},
	}

	for filename, products := range catalogs {
		filePath := filepath.Join(dataDir, filename)

		if err := createCatalogFile(filePath, products); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d products\n", filePath, len(products))
	}

	fmt.Println("\nSample catalogue files created successfully!")
}

func createCatalogFile(filePath string, products []sampleProduct) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	name := filePath
	if strings.HasSuffix(name, ".gz") {
		gzipWriter := gzip.NewWriter(file)
		defer func() {
			if closeErr := gzipWriter.Close(); err == nil {
				err = closeErr
			}
		}()
		w = gzipWriter
		name = strings.TrimSuffix(name, ".gz")
	}

	switch filepath.Ext(name) {
	case ".json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(products)
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(products)
		if err == nil {
			err = enc.Close()
		}
	default:
		return fmt.Errorf("unsupported catalogue format: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("failed to write products: %w", err)
	}

	return nil
}
