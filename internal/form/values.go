// Package form implements the product form core: the validation schema,
// the submission workflow, and the edit-prefill workflow. UI layers consume
// its state accessors and feed it field edits; no rendering happens here.
package form

import (
	"strings"

	"github.com/bancoplus/catalog/model"
)

// Form field names, as exposed to the UI layer.
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldLogo         = "logo"
	FieldDateRelease  = "dateRelease"
	FieldDateRevision = "dateRevision"
)

// Values is a draft of a product while it is being edited. Every field is a
// raw string at the input layer, including the id.
type Values struct {
	ID           string `json:"id" validate:"required,min=3,max=10"`
	Name         string `json:"name" validate:"required,min=6,max=100"`
	Description  string `json:"description" validate:"required,min=10,max=200"`
	Logo         string `json:"logo" validate:"required,url"`
	DateRelease  string `json:"dateRelease" validate:"required,strictdate"`
	DateRevision string `json:"dateRevision" validate:"required,strictdate"`
}

// Defaults returns the empty value set used for a new form.
func Defaults() Values {
	return Values{}
}

// ValuesFromProduct builds a prefill value set from an existing product.
func ValuesFromProduct(p model.Product) Values {
	return Values{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Logo:         p.Logo,
		DateRelease:  p.DateRelease,
		DateRevision: p.DateRevision,
	}
}

// normalized returns a copy with every field trimmed.
func (v Values) normalized() Values {
	return Values{
		ID:           strings.TrimSpace(v.ID),
		Name:         strings.TrimSpace(v.Name),
		Description:  strings.TrimSpace(v.Description),
		Logo:         strings.TrimSpace(v.Logo),
		DateRelease:  strings.TrimSpace(v.DateRelease),
		DateRevision: strings.TrimSpace(v.DateRevision),
	}
}
