package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"repair-crm/internal/entities"
	"repair-crm/pkg/strapi"
	"repair-crm/pkg/types"
)

// LedgerRepositoryInterface обслуживает три родственных ресурса CMS:
// incomes, outcomes и manual-incomes-outcomes. Форма записей одна,
// поэтому ресурс передаётся аргументом.
type LedgerRepositoryInterface interface {
	BuildQuery(filter types.Filter) *strapi.Query
	List(ctx context.Context, token, resource string, page, pageSize int, query string) ([]entities.LedgerEntry, uint64, error)
	FindByDocumentID(ctx context.Context, token, resource, documentID string) (*entities.LedgerEntry, error)
	Create(ctx context.Context, token, resource string, data map[string]interface{}) (*entities.LedgerEntry, error)
	Update(ctx context.Context, token, resource, documentID string, data map[string]interface{}) (*entities.LedgerEntry, error)
	Delete(ctx context.Context, token, resource, documentID string) error
}

type ledgerRepository struct {
	api *strapi.Client
}

func NewLedgerRepository(api *strapi.Client) LedgerRepositoryInterface {
	return &ledgerRepository{api: api}
}

func (r *ledgerRepository) BuildQuery(filter types.Filter) *strapi.Query {
	q := strapi.NewQuery().
		Populate("order", "user").
		Sort("createdAt:desc")

	if entryType, ok := filter.Filter["type"]; ok {
		q.Where("type", strapi.OpEq, entryType)
	}
	if approved, ok := filter.Filter["isApproved"]; ok {
		q.Where("isApproved", strapi.OpEq, approved)
	}
	if userID, ok := filter.Filter["user"]; ok {
		q.Where("user.id", strapi.OpEq, userID)
	}
	// Периодные выборки идут по бизнес-дате createdDate; legacy-записи без
	// неё сравниваются по системной createdAt, чтобы не выпадать из отчётов
	// до запуска починки дат.
	if filter.DateFrom != "" {
		q.WhereOrGroup(
			[]strapi.Cond{{Field: "createdDate", Op: strapi.OpGte, Value: filter.DateFrom}},
			[]strapi.Cond{
				{Field: "createdDate", Op: strapi.OpNull, Value: "true"},
				{Field: "createdAt", Op: strapi.OpGte, Value: filter.DateFrom},
			},
		)
	}
	if filter.DateTo != "" {
		q.WhereOrGroup(
			[]strapi.Cond{{Field: "createdDate", Op: strapi.OpLte, Value: filter.DateTo}},
			[]strapi.Cond{
				{Field: "createdDate", Op: strapi.OpNull, Value: "true"},
				{Field: "createdAt", Op: strapi.OpLte, Value: filter.DateTo},
			},
		)
	}

	return q
}

func (r *ledgerRepository) List(ctx context.Context, token, resource string, page, pageSize int, query string) ([]entities.LedgerEntry, uint64, error) {
	res, err := r.api.List(ctx, token, resource, page, pageSize, query)
	if err != nil {
		return nil, 0, err
	}

	var entries []entities.LedgerEntry
	if err := json.Unmarshal(res.Items, &entries); err != nil {
		return nil, 0, fmt.Errorf("разбор журнала %s: %w", resource, err)
	}
	return entries, res.Total, nil
}

func (r *ledgerRepository) FindByDocumentID(ctx context.Context, token, resource, documentID string) (*entities.LedgerEntry, error) {
	query := strapi.NewQuery().Populate("order", "user").Encode()
	raw, err := r.api.Find(ctx, token, resource, documentID, query)
	if err != nil {
		return nil, err
	}
	return decodeLedgerEntry(raw, resource)
}

func (r *ledgerRepository) Create(ctx context.Context, token, resource string, data map[string]interface{}) (*entities.LedgerEntry, error) {
	raw, err := r.api.Create(ctx, token, resource, data)
	if err != nil {
		return nil, err
	}
	return decodeLedgerEntry(raw, resource)
}

func (r *ledgerRepository) Update(ctx context.Context, token, resource, documentID string, data map[string]interface{}) (*entities.LedgerEntry, error) {
	raw, err := r.api.Update(ctx, token, resource, documentID, data)
	if err != nil {
		return nil, err
	}
	return decodeLedgerEntry(raw, resource)
}

func (r *ledgerRepository) Delete(ctx context.Context, token, resource, documentID string) error {
	return r.api.Delete(ctx, token, resource, documentID)
}

func decodeLedgerEntry(raw json.RawMessage, resource string) (*entities.LedgerEntry, error) {
	var entry entities.LedgerEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("разбор записи %s: %w", resource, err)
	}
	return &entry, nil
}
