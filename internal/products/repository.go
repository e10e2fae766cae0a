package products

import (
	"context"
	"net/url"

	"github.com/bancoplus/catalog/internal/api"
	"github.com/bancoplus/catalog/model"
)

const basePath = "/bp/products"

// Update carries every mutable product field. The id is addressed by the
// resource path and never part of an update payload.
type Update struct {
	Name         string
	Description  string
	Logo         string
	DateRelease  string
	DateRevision string
}

// Repository is the domain-typed facade over the remote catalog API. It is
// a stateless pass-through: no retries, no caching, and any transport
// failure propagates unchanged to the caller.
type Repository interface {
	// GetProducts fetches the full collection in backend order.
	GetProducts(ctx context.Context) ([]model.Product, error)
	// CreateProduct submits a new product. The returned id equals the
	// submitted id.
	CreateProduct(ctx context.Context, input model.Product) (model.Product, error)
	// UpdateProduct submits every field except the id to the resource at id
	// and merges the server response with the known id.
	UpdateProduct(ctx context.Context, id string, input Update) (model.Product, error)
	// DeleteProduct removes the resource at id.
	DeleteProduct(ctx context.Context, id string) error
	// VerifyProductID reports whether the id is already in use.
	VerifyProductID(ctx context.Context, id string) (bool, error)
}

type repository struct {
	client *api.Client
}

// NewRepository creates a Repository backed by the given API client.
func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) GetProducts(ctx context.Context) ([]model.Product, error) {
	var resp listResponse
	if err := r.client.GetJSON(ctx, basePath, &resp); err != nil {
		return nil, err
	}
	result := make([]model.Product, 0, len(resp.Data))
	for _, dto := range resp.Data {
		result = append(result, toDomain(dto))
	}
	return result, nil
}

func (r *repository) CreateProduct(ctx context.Context, input model.Product) (model.Product, error) {
	var resp mutationResponse
	if err := r.client.PostJSON(ctx, basePath, toDTO(input), &resp); err != nil {
		return model.Product{}, err
	}
	return toDomain(resp.Data), nil
}

func (r *repository) UpdateProduct(ctx context.Context, id string, input Update) (model.Product, error) {
	payload := updatePayload{
		Name:         input.Name,
		Description:  input.Description,
		Logo:         input.Logo,
		DateRelease:  NormalizeDate(input.DateRelease),
		DateRevision: NormalizeDate(input.DateRevision),
	}
	var resp mutationResponse
	if err := r.client.PutJSON(ctx, basePath+"/"+url.PathEscape(id), payload, &resp); err != nil {
		return model.Product{}, err
	}
	// Some backends omit the id from update responses.
	dto := resp.Data
	dto.ID = id
	return toDomain(dto), nil
}

func (r *repository) DeleteProduct(ctx context.Context, id string) error {
	return r.client.Delete(ctx, basePath+"/"+url.PathEscape(id))
}

func (r *repository) VerifyProductID(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.client.GetJSON(ctx, basePath+"/verification/"+url.PathEscape(id), &exists); err != nil {
		return false, err
	}
	return exists, nil
}
