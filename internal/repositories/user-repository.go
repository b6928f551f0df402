package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"repair-crm/internal/entities"
	"repair-crm/pkg/constants"
	"repair-crm/pkg/strapi"
	"repair-crm/pkg/types"
)

type UserRepositoryInterface interface {
	BuildQuery(filter types.Filter) *strapi.Query
	List(ctx context.Context, token string, page, pageSize int, query string) ([]entities.User, uint64, error)
	FindByDocumentID(ctx context.Context, token, documentID string) (*entities.User, error)
	Update(ctx context.Context, token, documentID string, data map[string]interface{}) (*entities.User, error)
	UpdateBalance(ctx context.Context, token, documentID string, balance float64) (*entities.User, error)
}

type userRepository struct {
	api *strapi.Client
}

func NewUserRepository(api *strapi.Client) UserRepositoryInterface {
	return &userRepository{api: api}
}

func (r *userRepository) BuildQuery(filter types.Filter) *strapi.Query {
	q := strapi.NewQuery().
		Populate("role").
		Sort("name:asc")

	if role, ok := filter.Filter["role"]; ok {
		q.Where("role.id", strapi.OpEq, role)
	}
	if blocked, ok := filter.Filter["blocked"]; ok {
		q.Where("blocked", strapi.OpEq, blocked)
	}
	if filter.Search != "" {
		q.WhereOr("name", strapi.OpContainsI, filter.Search)
		q.WhereOr("email", strapi.OpContainsI, filter.Search)
	}

	return q
}

// MastersFilter - готовый фильтр списка мастеров.
func MastersFilter() types.Filter {
	return types.Filter{
		Filter: map[string]string{"role": strconv.FormatUint(constants.RoleMaster, 10)},
	}
}

func (r *userRepository) List(ctx context.Context, token string, page, pageSize int, query string) ([]entities.User, uint64, error) {
	res, err := r.api.List(ctx, token, constants.ResourceUsers, page, pageSize, query)
	if err != nil {
		return nil, 0, err
	}

	var users []entities.User
	if err := json.Unmarshal(res.Items, &users); err != nil {
		return nil, 0, fmt.Errorf("разбор списка сотрудников: %w", err)
	}
	return users, res.Total, nil
}

func (r *userRepository) FindByDocumentID(ctx context.Context, token, documentID string) (*entities.User, error) {
	query := strapi.NewQuery().Populate("role").Encode()
	raw, err := r.api.Find(ctx, token, constants.ResourceUsers, documentID, query)
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (r *userRepository) Update(ctx context.Context, token, documentID string, data map[string]interface{}) (*entities.User, error) {
	raw, err := r.api.Update(ctx, token, constants.ResourceUsers, documentID, data)
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (r *userRepository) UpdateBalance(ctx context.Context, token, documentID string, balance float64) (*entities.User, error) {
	return r.Update(ctx, token, documentID, map[string]interface{}{"balance": balance})
}

func decodeUser(raw json.RawMessage) (*entities.User, error) {
	var user entities.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("разбор сотрудника: %w", err)
	}
	return &user, nil
}
