package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"repair-crm/internal/dto"
	"repair-crm/internal/entities"
	apperrors "repair-crm/pkg/errors"
	"repair-crm/pkg/strapi"
	"repair-crm/pkg/types"
	"repair-crm/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClientRepo struct {
	clients map[string]*entities.Client
	byPhone map[string]*entities.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		clients: make(map[string]*entities.Client),
		byPhone: make(map[string]*entities.Client),
	}
}

func (r *fakeClientRepo) add(client *entities.Client) {
	r.clients[client.DocumentID] = client
	r.byPhone[utils.NormalizePhone(client.Phone)] = client
}

func (r *fakeClientRepo) BuildQuery(filter types.Filter) *strapi.Query {
	return strapi.NewQuery()
}

func (r *fakeClientRepo) List(ctx context.Context, token string, page, pageSize int, query string) ([]entities.Client, uint64, error) {
	var all []entities.Client
	for _, client := range r.clients {
		all = append(all, *client)
	}
	return all, uint64(len(all)), nil
}

func (r *fakeClientRepo) FindByDocumentID(ctx context.Context, token, documentID string) (*entities.Client, error) {
	client, ok := r.clients[documentID]
	if !ok {
		return nil, nil
	}
	copied := *client
	return &copied, nil
}

func (r *fakeClientRepo) FindByPhoneDigits(ctx context.Context, token, digits string) (*entities.Client, error) {
	client, ok := r.byPhone[digits]
	if !ok {
		return nil, nil
	}
	copied := *client
	return &copied, nil
}

func (r *fakeClientRepo) Create(ctx context.Context, token string, data map[string]interface{}) (*entities.Client, error) {
	client := &entities.Client{
		DocumentID: "cli-new",
		Name:       data["name"].(string),
		Phone:      data["phone"].(string),
	}
	r.add(client)
	return client, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, token, documentID string, data map[string]interface{}) (*entities.Client, error) {
	client, ok := r.clients[documentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *client
	return &copied, nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, token, documentID string) error {
	delete(r.clients, documentID)
	return nil
}

func newClientServiceForTest(repo *fakeClientRepo) ClientServiceInterface {
	return NewClientService(repo, newFakeCache(), testBus(), time.Minute, zap.NewNop())
}

func TestCreateClient(t *testing.T) {
	svc := newClientServiceForTest(newFakeClientRepo())

	client, err := svc.CreateClient(testCtx(), dto.CreateClientDTO{
		Name:  "Иван Петров",
		Phone: "+7 (900) 123-45-67",
	})
	require.NoError(t, err)
	assert.Equal(t, "Иван Петров", client.Name)
}

// Дубликат ищется по последним десяти цифрам: форматирование и код страны
// не должны маскировать один и тот же номер.
func TestCreateClientDuplicatePhone(t *testing.T) {
	repo := newFakeClientRepo()
	repo.add(&entities.Client{DocumentID: "cli-1", Name: "Иван", Phone: "79001234567"})
	svc := newClientServiceForTest(repo)

	_, err := svc.CreateClient(testCtx(), dto.CreateClientDTO{
		Name:  "Другой Иван",
		Phone: "+7 (900) 123-45-67",
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)

	existing, ok := httpErr.Details.(*entities.Client)
	require.True(t, ok, "в деталях конфликта должна быть существующая запись")
	assert.Equal(t, "cli-1", existing.DocumentID)
}

func TestUpdateClientNoFields(t *testing.T) {
	svc := newClientServiceForTest(newFakeClientRepo())

	_, err := svc.UpdateClient(testCtx(), "cli-1", dto.UpdateClientDTO{})
	require.Error(t, err)
}
