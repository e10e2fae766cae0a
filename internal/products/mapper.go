package products

import (
	"regexp"
	"strings"
	"time"

	"github.com/bancoplus/catalog/model"
)

// DateLayout is the normalized calendar date form used throughout the domain.
const DateLayout = "2006-01-02"

var datePrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// fallbackLayouts are tried, in order, for values that do not start with a
// YYYY-MM-DD prefix. Only unambiguous ISO-style forms are recognized;
// slash-separated dates pass through untouched because month/day ordering
// cannot be inferred from the value.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeDate reduces a wire date value to its YYYY-MM-DD prefix. Full
// ISO-8601 timestamps are truncated; other recognizable date forms are
// reformatted to the same calendar day. Unparseable values are returned
// trimmed but otherwise unchanged, never rejected. The function is
// idempotent: normalizing an already-normalized value is a no-op.
func NormalizeDate(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if datePrefixPattern.MatchString(v) {
		return v[:10]
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(DateLayout)
		}
	}
	return v
}

// toDomain converts a wire product into the domain shape, normalizing both
// date fields.
func toDomain(dto productDTO) model.Product {
	return model.Product{
		ID:           dto.ID,
		Name:         dto.Name,
		Description:  dto.Description,
		Logo:         dto.Logo,
		DateRelease:  NormalizeDate(dto.DateRelease),
		DateRevision: NormalizeDate(dto.DateRevision),
	}
}

// toDTO converts a domain product into the wire shape. Dates are normalized
// symmetrically so the mapping round-trips.
func toDTO(p model.Product) productDTO {
	return productDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Logo:         p.Logo,
		DateRelease:  NormalizeDate(p.DateRelease),
		DateRevision: NormalizeDate(p.DateRevision),
	}
}
