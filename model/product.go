// Package model contains the domain types shared across the catalog client:
// the product entity and the error taxonomy for failed backend interactions.
package model

// Product is the internal representation of a financial product. Both dates
// are normalized calendar dates in YYYY-MM-DD form. DateRevision always
// equals DateRelease plus exactly one calendar year; the form layer derives
// it reactively and the validation schema enforces it again at submit time.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Logo         string `json:"logo"`
	DateRelease  string `json:"dateRelease"`
	DateRevision string `json:"dateRevision"`
}
