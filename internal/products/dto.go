// Package products implements the domain-facing repository over the remote
// catalog API, the wire-format mapping, and the shared list cache.
package products

// productDTO is the wire representation of a product. The two date fields
// use snake_case names and may arrive as full ISO-8601 timestamps.
type productDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Logo         string `json:"logo"`
	DateRelease  string `json:"date_release"`
	DateRevision string `json:"date_revision"`
}

// updatePayload is a productDTO without the immutable id.
type updatePayload struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Logo         string `json:"logo"`
	DateRelease  string `json:"date_release"`
	DateRevision string `json:"date_revision"`
}

// listResponse is the envelope returned by GET /bp/products.
type listResponse struct {
	Data []productDTO `json:"data"`
}

// mutationResponse is the envelope returned by create and update calls.
type mutationResponse struct {
	Message string     `json:"message"`
	Data    productDTO `json:"data"`
}
