package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"repair-crm/internal/entities"
	"repair-crm/pkg/constants"
	"repair-crm/pkg/strapi"
	"repair-crm/pkg/types"
)

type ClientRepositoryInterface interface {
	BuildQuery(filter types.Filter) *strapi.Query
	List(ctx context.Context, token string, page, pageSize int, query string) ([]entities.Client, uint64, error)
	FindByDocumentID(ctx context.Context, token, documentID string) (*entities.Client, error)
	FindByPhoneDigits(ctx context.Context, token, digits string) (*entities.Client, error)
	Create(ctx context.Context, token string, data map[string]interface{}) (*entities.Client, error)
	Update(ctx context.Context, token, documentID string, data map[string]interface{}) (*entities.Client, error)
	Delete(ctx context.Context, token, documentID string) error
}

type clientRepository struct {
	api *strapi.Client
}

func NewClientRepository(api *strapi.Client) ClientRepositoryInterface {
	return &clientRepository{api: api}
}

func (r *clientRepository) BuildQuery(filter types.Filter) *strapi.Query {
	q := strapi.NewQuery().
		Populate("orders").
		Sort("createdAt:desc")

	if rating, ok := filter.Filter["rating"]; ok {
		q.Where("rating", strapi.OpEq, rating)
	}
	if filter.Search != "" {
		q.WhereOr("name", strapi.OpContainsI, filter.Search)
		q.WhereOr("phone", strapi.OpContainsI, filter.Search)
		q.WhereOr("address", strapi.OpContainsI, filter.Search)
	}
	for field, direction := range filter.Sort {
		q.Sort(field + ":" + direction)
	}

	return q
}

func (r *clientRepository) List(ctx context.Context, token string, page, pageSize int, query string) ([]entities.Client, uint64, error) {
	res, err := r.api.List(ctx, token, constants.ResourceClients, page, pageSize, query)
	if err != nil {
		return nil, 0, err
	}

	var clients []entities.Client
	if err := json.Unmarshal(res.Items, &clients); err != nil {
		return nil, 0, fmt.Errorf("разбор списка клиентов: %w", err)
	}
	return clients, res.Total, nil
}

func (r *clientRepository) FindByDocumentID(ctx context.Context, token, documentID string) (*entities.Client, error) {
	query := strapi.NewQuery().Populate("orders").Encode()
	raw, err := r.api.Find(ctx, token, constants.ResourceClients, documentID, query)
	if err != nil {
		return nil, err
	}
	return decodeClient(raw)
}

// FindByPhoneDigits ищет клиента по нормализованным цифрам телефона.
// Возвращает nil без ошибки, если совпадений нет.
func (r *clientRepository) FindByPhoneDigits(ctx context.Context, token, digits string) (*entities.Client, error) {
	query := strapi.NewQuery().Where("phone", strapi.OpContainsI, digits).Encode()
	res, err := r.api.List(ctx, token, constants.ResourceClients, 1, 1, query)
	if err != nil {
		return nil, err
	}

	var clients []entities.Client
	if err := json.Unmarshal(res.Items, &clients); err != nil {
		return nil, fmt.Errorf("разбор списка клиентов: %w", err)
	}
	if len(clients) == 0 {
		return nil, nil
	}
	return &clients[0], nil
}

func (r *clientRepository) Create(ctx context.Context, token string, data map[string]interface{}) (*entities.Client, error) {
	raw, err := r.api.Create(ctx, token, constants.ResourceClients, data)
	if err != nil {
		return nil, err
	}
	return decodeClient(raw)
}

func (r *clientRepository) Update(ctx context.Context, token, documentID string, data map[string]interface{}) (*entities.Client, error) {
	raw, err := r.api.Update(ctx, token, constants.ResourceClients, documentID, data)
	if err != nil {
		return nil, err
	}
	return decodeClient(raw)
}

func (r *clientRepository) Delete(ctx context.Context, token, documentID string) error {
	return r.api.Delete(ctx, token, constants.ResourceClients, documentID)
}

func decodeClient(raw json.RawMessage) (*entities.Client, error) {
	var client entities.Client
	if err := json.Unmarshal(raw, &client); err != nil {
		return nil, fmt.Errorf("разбор клиента: %w", err)
	}
	return &client, nil
}
