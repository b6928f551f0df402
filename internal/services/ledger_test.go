package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"repair-crm/internal/dto"
	"repair-crm/internal/entities"
	"repair-crm/pkg/constants"
	apperrors "repair-crm/pkg/errors"
	"repair-crm/pkg/strapi"
	"repair-crm/pkg/types"
	"repair-crm/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeLedgerRepo хранит записи в памяти, раскладывая их по ресурсам.
type fakeLedgerRepo struct {
	entries map[string][]entities.LedgerEntry
	nextID  uint64

	createErr error
	updateErr error
	deleteErr error

	deleted []string
	updates []map[string]interface{}
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{entries: make(map[string][]entities.LedgerEntry), nextID: 1}
}

func (r *fakeLedgerRepo) BuildQuery(filter types.Filter) *strapi.Query {
	return strapi.NewQuery()
}

func (r *fakeLedgerRepo) List(ctx context.Context, token, resource string, page, pageSize int, query string) ([]entities.LedgerEntry, uint64, error) {
	all := r.entries[resource]
	total := uint64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeLedgerRepo) FindByDocumentID(ctx context.Context, token, resource, documentID string) (*entities.LedgerEntry, error) {
	for i := range r.entries[resource] {
		if r.entries[resource][i].DocumentID == documentID {
			entry := r.entries[resource][i]
			return &entry, nil
		}
	}
	return nil, nil
}

func (r *fakeLedgerRepo) Create(ctx context.Context, token, resource string, data map[string]interface{}) (*entities.LedgerEntry, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	entry := entities.LedgerEntry{
		ID:         r.nextID,
		DocumentID: fmt.Sprintf("doc-%d", r.nextID),
		Count:      data["count"].(float64),
		Type:       data["type"].(string),
		IsApproved: data["isApproved"].(bool),
		CreatedAt:  time.Now(),
	}
	if userID, ok := data["user"].(string); ok {
		entry.User = &entities.User{DocumentID: userID}
	}
	r.nextID++
	r.entries[resource] = append(r.entries[resource], entry)
	return &entry, nil
}

func (r *fakeLedgerRepo) Update(ctx context.Context, token, resource, documentID string, data map[string]interface{}) (*entities.LedgerEntry, error) {
	r.updates = append(r.updates, data)
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for i := range r.entries[resource] {
		if r.entries[resource][i].DocumentID == documentID {
			if approved, ok := data["isApproved"].(bool); ok {
				r.entries[resource][i].IsApproved = approved
			}
			entry := r.entries[resource][i]
			return &entry, nil
		}
	}
	return nil, errors.New("запись не найдена")
}

func (r *fakeLedgerRepo) Delete(ctx context.Context, token, resource, documentID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, resource+"/"+documentID)
	kept := r.entries[resource][:0]
	for _, entry := range r.entries[resource] {
		if entry.DocumentID != documentID {
			kept = append(kept, entry)
		}
	}
	r.entries[resource] = kept
	return nil
}

// fakeUserRepo - сотрудники в памяти с балансом.
type fakeUserRepo struct {
	users map[string]*entities.User

	balanceErr     error
	balanceUpdates []float64
	lastUpdate     map[string]interface{}
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entities.User)}
	for _, user := range users {
		repo.users[user.DocumentID] = user
	}
	return repo
}

func (r *fakeUserRepo) BuildQuery(filter types.Filter) *strapi.Query {
	return strapi.NewQuery()
}

func (r *fakeUserRepo) List(ctx context.Context, token string, page, pageSize int, query string) ([]entities.User, uint64, error) {
	var all []entities.User
	for _, user := range r.users {
		all = append(all, *user)
	}
	return all, uint64(len(all)), nil
}

func (r *fakeUserRepo) FindByDocumentID(ctx context.Context, token, documentID string) (*entities.User, error) {
	user, ok := r.users[documentID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, token, documentID string, data map[string]interface{}) (*entities.User, error) {
	user, ok := r.users[documentID]
	if !ok {
		return nil, errors.New("сотрудник не найден")
	}
	r.lastUpdate = data
	if blocked, ok := data["blocked"].(bool); ok {
		user.Blocked = blocked
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateBalance(ctx context.Context, token, documentID string, balance float64) (*entities.User, error) {
	if r.balanceErr != nil {
		return nil, r.balanceErr
	}
	user, ok := r.users[documentID]
	if !ok {
		return nil, errors.New("сотрудник не найден")
	}
	user.Balance = balance
	r.balanceUpdates = append(r.balanceUpdates, balance)
	copied := *user
	return &copied, nil
}

func newLedgerServiceForTest(ledgerRepo *fakeLedgerRepo, userRepo *fakeUserRepo, cache *fakeCache) LedgerServiceInterface {
	return NewLedgerService(ledgerRepo, userRepo, cache, testBus(), time.Minute, zap.NewNop())
}

func TestResourceForRouting(t *testing.T) {
	orderID := utils.ToPtr("order-1")

	assert.Equal(t, constants.ResourceManualIO, resourceFor(dto.CreateLedgerEntryDTO{Type: "income"}))
	assert.Equal(t, constants.ResourceIncomes, resourceFor(dto.CreateLedgerEntryDTO{Type: "income", OrderID: orderID}))
	assert.Equal(t, constants.ResourceOutcomes, resourceFor(dto.CreateLedgerEntryDTO{Type: "outcome", OrderID: orderID}))
}

func TestPostManualAppliesBalance(t *testing.T) {
	master := &entities.User{DocumentID: "user-1", Name: "Мастер", Balance: 100}
	ledgerRepo := newFakeLedgerRepo()
	userRepo := newFakeUserRepo(master)
	cache := newFakeCache()
	svc := newLedgerServiceForTest(ledgerRepo, userRepo, cache)

	entry, err := svc.PostManual(testCtx(), dto.PostLedgerDTO{
		UserID: "user-1",
		Count:  50,
		Type:   "income",
	})
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, 150.0, master.Balance)
	assert.True(t, entry.IsApproved, "ручная проводка сразу утверждена")
	require.Len(t, ledgerRepo.entries[constants.ResourceManualIO], 1)

	// Мутация сбрасывает кеш и журнала, и сотрудников.
	invalidated := cache.invalidatedResources()
	assert.Contains(t, invalidated, constants.ResourceManualIO)
	assert.Contains(t, invalidated, constants.ResourceUsers)
}

func TestPostManualOutcomeDecreasesBalance(t *testing.T) {
	master := &entities.User{DocumentID: "user-1", Balance: 100}
	svc := newLedgerServiceForTest(newFakeLedgerRepo(), newFakeUserRepo(master), newFakeCache())

	_, err := svc.PostManual(testCtx(), dto.PostLedgerDTO{
		UserID: "user-1",
		Count:  30,
		Type:   "outcome",
	})
	require.NoError(t, err)
	assert.Equal(t, 70.0, master.Balance)
}

// Баланс обновить не удалось - созданная запись должна быть удалена,
// иначе журнал и баланс разъедутся.
func TestPostManualCompensatesOnBalanceFailure(t *testing.T) {
	master := &entities.User{DocumentID: "user-1", Balance: 100}
	ledgerRepo := newFakeLedgerRepo()
	userRepo := newFakeUserRepo(master)
	userRepo.balanceErr = errors.New("CMS недоступна")
	svc := newLedgerServiceForTest(ledgerRepo, userRepo, newFakeCache())

	_, err := svc.PostManual(testCtx(), dto.PostLedgerDTO{
		UserID: "user-1",
		Count:  50,
		Type:   "income",
	})
	require.Error(t, err)

	assert.Empty(t, ledgerRepo.entries[constants.ResourceManualIO], "компенсация должна удалить запись")
	assert.Len(t, ledgerRepo.deleted, 1)
	assert.Equal(t, 100.0, master.Balance)
}

func TestPostManualUnknownUser(t *testing.T) {
	svc := newLedgerServiceForTest(newFakeLedgerRepo(), newFakeUserRepo(), newFakeCache())

	_, err := svc.PostManual(testCtx(), dto.PostLedgerDTO{UserID: "нет-такого", Count: 10, Type: "income"})
	require.Error(t, err)
}

func TestApproveEntryAppliesBalance(t *testing.T) {
	master := &entities.User{DocumentID: "user-1", Balance: 10}
	ledgerRepo := newFakeLedgerRepo()
	userRepo := newFakeUserRepo(master)
	svc := newLedgerServiceForTest(ledgerRepo, userRepo, newFakeCache())

	created, err := ledgerRepo.Create(context.Background(), "", constants.ResourceIncomes, map[string]interface{}{
		"count": 25.0, "type": "income", "isApproved": false, "user": "user-1",
	})
	require.NoError(t, err)

	entry, err := svc.ApproveEntry(testCtx(), constants.ResourceIncomes, created.DocumentID)
	require.NoError(t, err)
	assert.True(t, entry.IsApproved)
	assert.Equal(t, 35.0, master.Balance)
}

// Повторное утверждение (двойной клик, ретрай клиента) не должно сдвигать
// баланс второй раз.
func TestApproveEntryIdempotent(t *testing.T) {
	master := &entities.User{DocumentID: "user-1", Balance: 0}
	ledgerRepo := newFakeLedgerRepo()
	userRepo := newFakeUserRepo(master)
	svc := newLedgerServiceForTest(ledgerRepo, userRepo, newFakeCache())

	created, err := ledgerRepo.Create(context.Background(), "", constants.ResourceIncomes, map[string]interface{}{
		"count": 100.0, "type": "income", "isApproved": false, "user": "user-1",
	})
	require.NoError(t, err)

	first, err := svc.ApproveEntry(testCtx(), constants.ResourceIncomes, created.DocumentID)
	require.NoError(t, err)
	assert.True(t, first.IsApproved)
	assert.Equal(t, 100.0, master.Balance)

	second, err := svc.ApproveEntry(testCtx(), constants.ResourceIncomes, created.DocumentID)
	require.NoError(t, err)
	assert.True(t, second.IsApproved)
	assert.Equal(t, 100.0, master.Balance, "повтор не должен применить дельту ещё раз")
	assert.Len(t, userRepo.balanceUpdates, 1)
	assert.Len(t, ledgerRepo.updates, 1, "повтор не должен писать в CMS")
}

func TestApproveEntryUnknownDocument(t *testing.T) {
	svc := newLedgerServiceForTest(newFakeLedgerRepo(), newFakeUserRepo(), newFakeCache())

	_, err := svc.ApproveEntry(testCtx(), constants.ResourceIncomes, "нет-такой")
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
}

// Если после утверждения не удалось сдвинуть баланс, флаг откатывается.
func TestApproveEntryRevertsFlagOnBalanceFailure(t *testing.T) {
	master := &entities.User{DocumentID: "user-1", Balance: 10}
	ledgerRepo := newFakeLedgerRepo()
	userRepo := newFakeUserRepo(master)
	userRepo.balanceErr = errors.New("CMS недоступна")
	svc := newLedgerServiceForTest(ledgerRepo, userRepo, newFakeCache())

	created, err := ledgerRepo.Create(context.Background(), "", constants.ResourceIncomes, map[string]interface{}{
		"count": 25.0, "type": "income", "isApproved": false, "user": "user-1",
	})
	require.NoError(t, err)

	_, err = svc.ApproveEntry(testCtx(), constants.ResourceIncomes, created.DocumentID)
	require.Error(t, err)

	// Последнее обновление - откат isApproved в false.
	last := ledgerRepo.updates[len(ledgerRepo.updates)-1]
	assert.Equal(t, false, last["isApproved"])
	assert.Equal(t, 10.0, master.Balance)
}

func TestGetAllLedgerMergesResources(t *testing.T) {
	ledgerRepo := newFakeLedgerRepo()
	for _, resource := range []string{constants.ResourceIncomes, constants.ResourceOutcomes, constants.ResourceManualIO} {
		_, err := ledgerRepo.Create(context.Background(), "", resource, map[string]interface{}{
			"count": 10.0, "type": "income", "isApproved": true,
		})
		require.NoError(t, err)
	}
	svc := newLedgerServiceForTest(ledgerRepo, newFakeUserRepo(), newFakeCache())

	entries, err := svc.GetAllLedger(testCtx(), types.Filter{Page: 1, Limit: 25})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestIsLedgerResource(t *testing.T) {
	assert.True(t, IsLedgerResource(constants.ResourceIncomes))
	assert.True(t, IsLedgerResource(constants.ResourceOutcomes))
	assert.True(t, IsLedgerResource(constants.ResourceManualIO))
	assert.False(t, IsLedgerResource("orders"))
}
