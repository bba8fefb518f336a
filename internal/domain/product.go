package domain

import "strings"

// Attribute is a single name/value pair describing a product parameter.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductInput carries the product fields a description is generated from.
// All fields are plain text; absent values are represented by empty strings
// rather than rejected, matching the loose contract of the upstream form.
type ProductInput struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Attributes   []Attribute `json:"attributes"`
	ProducerName string      `json:"producer_name"`
	ImageURL     string      `json:"image_url"`
}

// Normalize trims every text field in place and drops surrounding
// whitespace from attribute names and values. It never fails.
func (p *ProductInput) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.ProducerName = strings.TrimSpace(p.ProducerName)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	for i := range p.Attributes {
		p.Attributes[i].Name = strings.TrimSpace(p.Attributes[i].Name)
		p.Attributes[i].Value = strings.TrimSpace(p.Attributes[i].Value)
	}
}

// AttributeSummary serializes the attribute list as "name: value" pairs
// joined by ", ", preserving input order. Attributes with an empty value
// are excluded.
func (p ProductInput) AttributeSummary() string {
	var b strings.Builder
	for _, a := range p.Attributes {
		if a.Value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name)
		b.WriteString(": ")
		b.WriteString(a.Value)
	}
	return b.String()
}
