package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"topup-admin-go/internal/models"

	"gopkg.in/yaml.v2"
)

// LoadCatalog reads the payment method and service catalog. A missing file
// yields a nil catalog, which accepts any value.
func LoadCatalog(catalogFile string) (*models.Catalog, error) {
	if catalogFile == "" {
		return nil, nil
	}

	catalogPath := catalogFile
	if !filepath.IsAbs(catalogFile) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		catalogPath = filepath.Join(wd, catalogFile)
	}

	data, err := os.ReadFile(catalogPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", catalogFile, err)
	}

	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML
func ParseCatalog(data []byte) (*models.Catalog, error) {
	var catalog models.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("unable to parse catalog: %w", err)
	}

	if err := validateEntries("payment method", catalog.PaymentMethods); err != nil {
		return nil, err
	}
	if err := validateEntries("service", catalog.Services); err != nil {
		return nil, err
	}

	return &catalog, nil
}

func validateEntries(label string, entries []models.CatalogEntry) error {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		id := strings.ToLower(strings.TrimSpace(e.Id))
		if id == "" {
			return fmt.Errorf("%s at index %d missing id", label, i)
		}
		if seen[id] {
			return fmt.Errorf("duplicate %s %q", label, e.Id)
		}
		seen[id] = true
	}
	return nil
}
