package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID identifies a product. It is string-backed; on the wire it may arrive as
// either a JSON number or a JSON string and is always written as a string.
type ID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a number or a string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}

// Product represents an item in the catalogue.
type Product struct {
	ID    ID       `json:"id" db:"id"`
	Name  string   `json:"name" db:"name"`
	Price *float64 `json:"price,omitempty" db:"price"`
}

// ProductInput is the partial product payload accepted by create and update.
// Nil fields are left untouched on update.
type ProductInput struct {
	Name  *string  `json:"name,omitempty" yaml:"name,omitempty"`
	Price *float64 `json:"price,omitempty" yaml:"price,omitempty"`
}

// Envelope wraps every successful API response.
type Envelope struct {
	Results []Product `json:"results"`
	Error   string    `json:"error"`
}

// NewEnvelope builds a success envelope. Results is never nil so that an
// empty collection encodes as [] rather than null.
func NewEnvelope(products ...Product) Envelope {
	if products == nil {
		products = []Product{}
	}
	return Envelope{Results: products, Error: ""}
}

// Ptr returns a pointer to v. Handy for building ProductInput values.
func Ptr[T any](v T) *T {
	return &v
}
