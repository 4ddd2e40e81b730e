package models

import "strings"

// Catalog lists the payment methods deposits may use and the top-up services
// purchases may target. An empty list accepts any value.
type Catalog struct {
	PaymentMethods []CatalogEntry `yaml:"payment_methods"`
	Services       []CatalogEntry `yaml:"services"`
}

// CatalogEntry is one selectable method or service
type CatalogEntry struct {
	Id   string `yaml:"id"`
	Name string `yaml:"name"`
}

func (c *Catalog) HasMethod(id string) bool {
	if c == nil {
		return true
	}
	return containsEntry(c.PaymentMethods, id)
}

func (c *Catalog) HasService(id string) bool {
	if c == nil {
		return true
	}
	return containsEntry(c.Services, id)
}

func containsEntry(entries []CatalogEntry, id string) bool {
	if len(entries) == 0 {
		return true
	}
	for _, e := range entries {
		if strings.EqualFold(e.Id, id) {
			return true
		}
	}
	return false
}
