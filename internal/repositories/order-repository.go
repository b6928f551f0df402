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

type OrderRepositoryInterface interface {
	BuildQuery(filter types.Filter) *strapi.Query
	List(ctx context.Context, token string, page, pageSize int, query string) ([]entities.Order, uint64, error)
	FindByDocumentID(ctx context.Context, token, documentID string) (*entities.Order, error)
	Create(ctx context.Context, token string, data map[string]interface{}) (*entities.Order, error)
	Update(ctx context.Context, token, documentID string, data map[string]interface{}) (*entities.Order, error)
	Delete(ctx context.Context, token, documentID string) error
}

type orderRepository struct {
	api *strapi.Client
}

func NewOrderRepository(api *strapi.Client) OrderRepositoryInterface {
	return &orderRepository{api: api}
}

// BuildQuery переводит фильтр шлюза в запрос CMS. Форма populate у каждого
// ресурса своя и задаётся только здесь, чтобы ключи кеша совпадали у всех
// вызывающих.
func (r *orderRepository) BuildQuery(filter types.Filter) *strapi.Query {
	q := strapi.NewQuery().
		Populate("client", "master", "incomes_outcomes").
		Sort("createdAt:desc")

	if status, ok := filter.Filter["orderStatus"]; ok {
		q.Where("orderStatus", strapi.OpEq, status)
	}
	if master, ok := filter.Filter["master"]; ok {
		q.Where("master.id", strapi.OpEq, master)
	}
	if clientID, ok := filter.Filter["client"]; ok {
		q.Where("client.documentId", strapi.OpEq, clientID)
	}
	// Отчёты фильтруют по дате выдачи, остальные выборки - по дате создания.
	dateField := "createdAt"
	if v, ok := filter.Filter["date_field"]; ok && v != "" {
		dateField = v
	}
	if filter.DateFrom != "" {
		q.Where(dateField, strapi.OpGte, filter.DateFrom)
	}
	if filter.DateTo != "" {
		q.Where(dateField, strapi.OpLte, filter.DateTo)
	}
	if filter.Search != "" {
		q.WhereOr("title", strapi.OpContainsI, filter.Search)
		q.WhereOr("client.name", strapi.OpContainsI, filter.Search)
		q.WhereOr("client.phone", strapi.OpContainsI, filter.Search)
	}
	for field, direction := range filter.Sort {
		q.Sort(field + ":" + direction)
	}

	return q
}

func (r *orderRepository) List(ctx context.Context, token string, page, pageSize int, query string) ([]entities.Order, uint64, error) {
	res, err := r.api.List(ctx, token, constants.ResourceOrders, page, pageSize, query)
	if err != nil {
		return nil, 0, err
	}

	var orders []entities.Order
	if err := json.Unmarshal(res.Items, &orders); err != nil {
		return nil, 0, fmt.Errorf("разбор списка заявок: %w", err)
	}
	return orders, res.Total, nil
}

func (r *orderRepository) FindByDocumentID(ctx context.Context, token, documentID string) (*entities.Order, error) {
	query := strapi.NewQuery().Populate("client", "master", "incomes_outcomes").Encode()
	raw, err := r.api.Find(ctx, token, constants.ResourceOrders, documentID, query)
	if err != nil {
		return nil, err
	}
	return decodeOrder(raw)
}

func (r *orderRepository) Create(ctx context.Context, token string, data map[string]interface{}) (*entities.Order, error) {
	raw, err := r.api.Create(ctx, token, constants.ResourceOrders, data)
	if err != nil {
		return nil, err
	}
	return decodeOrder(raw)
}

func (r *orderRepository) Update(ctx context.Context, token, documentID string, data map[string]interface{}) (*entities.Order, error) {
	raw, err := r.api.Update(ctx, token, constants.ResourceOrders, documentID, data)
	if err != nil {
		return nil, err
	}
	return decodeOrder(raw)
}

func (r *orderRepository) Delete(ctx context.Context, token, documentID string) error {
	return r.api.Delete(ctx, token, constants.ResourceOrders, documentID)
}

func decodeOrder(raw json.RawMessage) (*entities.Order, error) {
	var order entities.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("разбор заявки: %w", err)
	}
	return &order, nil
}
