package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"repair-crm/internal/entities"
	"repair-crm/pkg/constants"
	"repair-crm/pkg/strapi"
)

type CashboxRepositoryInterface interface {
	GetCashbox(ctx context.Context, token string) (*entities.Cashbox, error)
	UpdateBalance(ctx context.Context, token string, balance float64) (*entities.Cashbox, error)
	ListTransactions(ctx context.Context, token string, page, pageSize int) ([]entities.CashTransaction, uint64, error)
	CreateTransaction(ctx context.Context, token string, data map[string]interface{}) (*entities.CashTransaction, error)
	DeleteTransaction(ctx context.Context, token, documentID string) error
}

type cashboxRepository struct {
	api *strapi.Client
}

func NewCashboxRepository(api *strapi.Client) CashboxRepositoryInterface {
	return &cashboxRepository{api: api}
}

func (r *cashboxRepository) GetCashbox(ctx context.Context, token string) (*entities.Cashbox, error) {
	raw, err := r.api.GetSingle(ctx, token, constants.ResourceCashbox, "")
	if err != nil {
		return nil, err
	}

	var cashbox entities.Cashbox
	if err := json.Unmarshal(raw, &cashbox); err != nil {
		return nil, fmt.Errorf("разбор кассы: %w", err)
	}
	return &cashbox, nil
}

func (r *cashboxRepository) UpdateBalance(ctx context.Context, token string, balance float64) (*entities.Cashbox, error) {
	raw, err := r.api.UpdateSingle(ctx, token, constants.ResourceCashbox, map[string]interface{}{"balance": balance})
	if err != nil {
		return nil, err
	}

	var cashbox entities.Cashbox
	if err := json.Unmarshal(raw, &cashbox); err != nil {
		return nil, fmt.Errorf("разбор кассы: %w", err)
	}
	return &cashbox, nil
}

func (r *cashboxRepository) ListTransactions(ctx context.Context, token string, page, pageSize int) ([]entities.CashTransaction, uint64, error) {
	query := strapi.NewQuery().Populate("user").Sort("createdAt:desc").Encode()
	res, err := r.api.List(ctx, token, constants.ResourceCashTransactions, page, pageSize, query)
	if err != nil {
		return nil, 0, err
	}

	var transactions []entities.CashTransaction
	if err := json.Unmarshal(res.Items, &transactions); err != nil {
		return nil, 0, fmt.Errorf("разбор журнала кассы: %w", err)
	}
	return transactions, res.Total, nil
}

func (r *cashboxRepository) CreateTransaction(ctx context.Context, token string, data map[string]interface{}) (*entities.CashTransaction, error) {
	raw, err := r.api.Create(ctx, token, constants.ResourceCashTransactions, data)
	if err != nil {
		return nil, err
	}

	var transaction entities.CashTransaction
	if err := json.Unmarshal(raw, &transaction); err != nil {
		return nil, fmt.Errorf("разбор кассовой операции: %w", err)
	}
	return &transaction, nil
}

func (r *cashboxRepository) DeleteTransaction(ctx context.Context, token, documentID string) error {
	return r.api.Delete(ctx, token, constants.ResourceCashTransactions, documentID)
}
