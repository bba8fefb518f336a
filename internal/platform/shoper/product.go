package shoper

import (
	"encoding/json"

	"github.com/mamyzabawki/descgen-api/internal/domain"
)

// Translation holds the localized fields of a product record.
type Translation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product is the subset of a Shoper product record this service consumes.
// Numeric identifiers arrive as either numbers or strings depending on the
// platform version, hence json.Number.
type Product struct {
	ProductID    json.Number            `json:"product_id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Translations map[string]Translation `json:"translations"`
	Attributes   []domain.Attribute     `json:"attributes"`
	ProducerID   json.Number            `json:"producer_id"`
}

// pl_PL is the storefront locale the descriptions are written in.
const locale = "pl_PL"

// Localized returns the product's name and description, preferring the
// pl_PL translation and falling back to the raw fields.
func (p Product) Localized() (name, description string) {
	name = p.Name
	description = p.Description
	if tr, ok := p.Translations[locale]; ok {
		if tr.Name != "" {
			name = tr.Name
		}
		if tr.Description != "" {
			description = tr.Description
		}
	}
	return name, description
}

// Input converts the record into the normalized product input used by the
// prompt builder. The producer identifier stands in for the producer name;
// the record carries no resolved name.
func (p Product) Input() domain.ProductInput {
	name, description := p.Localized()
	input := domain.ProductInput{
		Name:         name,
		Description:  description,
		Attributes:   p.Attributes,
		ProducerName: p.ProducerID.String(),
	}
	input.Normalize()
	return input
}
