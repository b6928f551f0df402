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
	"repair-crm/pkg/contextkeys"
	"repair-crm/pkg/strapi"
	"repair-crm/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	orders map[string]*entities.Order

	listCalls  int
	lastUpdate map[string]interface{}
}

func newFakeOrderRepo(orders ...*entities.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[string]*entities.Order)}
	for _, order := range orders {
		repo.orders[order.DocumentID] = order
	}
	return repo
}

func (r *fakeOrderRepo) BuildQuery(filter types.Filter) *strapi.Query {
	return strapi.NewQuery()
}

func (r *fakeOrderRepo) List(ctx context.Context, token string, page, pageSize int, query string) ([]entities.Order, uint64, error) {
	r.listCalls++
	var all []entities.Order
	for _, order := range r.orders {
		all = append(all, *order)
	}
	return all, uint64(len(all)), nil
}

func (r *fakeOrderRepo) FindByDocumentID(ctx context.Context, token, documentID string) (*entities.Order, error) {
	order, ok := r.orders[documentID]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, token string, data map[string]interface{}) (*entities.Order, error) {
	order := &entities.Order{ID: 1, DocumentID: "new-order"}
	if title, ok := data["title"].(string); ok {
		order.Title = title
	}
	if status, ok := data["orderStatus"].(string); ok {
		order.OrderStatus = status
	}
	r.orders[order.DocumentID] = order
	return order, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, token, documentID string, data map[string]interface{}) (*entities.Order, error) {
	order, ok := r.orders[documentID]
	if !ok {
		return nil, errors.New("заявка не найдена")
	}
	r.lastUpdate = data
	if status, ok := data["orderStatus"].(string); ok {
		order.OrderStatus = status
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, token, documentID string) error {
	delete(r.orders, documentID)
	return nil
}

func newOrderServiceForTest(repo *fakeOrderRepo, cache *fakeCache) OrderServiceInterface {
	return NewOrderService(repo, cache, testBus(), time.Minute, zap.NewNop())
}

// pagedOrderRepo честно нарезает упорядоченный список по страницам.
type pagedOrderRepo struct {
	fakeOrderRepo
	ordered []entities.Order
}

func (r *pagedOrderRepo) List(ctx context.Context, token string, page, pageSize int, query string) ([]entities.Order, uint64, error) {
	r.listCalls++
	total := uint64(len(r.ordered))
	start := (page - 1) * pageSize
	if start >= len(r.ordered) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(r.ordered) {
		end = len(r.ordered)
	}
	return r.ordered[start:end], total, nil
}

// Пять заявок при размере страницы 2 - три обращения к CMS и полный
// список в исходном порядке.
func TestGetAllOrdersFetchesEveryPage(t *testing.T) {
	repo := &pagedOrderRepo{}
	for i := 1; i <= 5; i++ {
		repo.ordered = append(repo.ordered, entities.Order{
			ID:         uint64(i),
			DocumentID: fmt.Sprintf("ord-%d", i),
		})
	}
	svc := NewOrderService(repo, newFakeCache(), testBus(), time.Minute, zap.NewNop())

	orders, total, err := svc.GetAllOrders(testCtx(), types.Filter{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), total)
	assert.Equal(t, 3, repo.listCalls, "страницы 1, 2 и 3 - ровно три обращения")
	require.Len(t, orders, 5)
	for i, order := range orders {
		assert.Equal(t, fmt.Sprintf("ord-%d", i+1), order.DocumentID)
	}
}

func TestChangeStatusWorkflowFlags(t *testing.T) {
	cases := []struct {
		status       string
		wantApprove  interface{}
		wantRevision interface{}
	}{
		{constants.StatusApproval, false, false},
		{constants.StatusInProgress, true, false},
		{constants.StatusDiagnostic, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			repo := newFakeOrderRepo(&entities.Order{DocumentID: "ord-1", OrderStatus: constants.StatusNew})
			svc := newOrderServiceForTest(repo, newFakeCache())

			order, err := svc.ChangeStatus(testCtx(), "ord-1", dto.ChangeOrderStatusDTO{Status: tc.status})
			require.NoError(t, err)
			assert.Equal(t, tc.status, order.OrderStatus)
			assert.Equal(t, tc.wantApprove, repo.lastUpdate["is_approve"])
			assert.Equal(t, tc.wantRevision, repo.lastUpdate["is_revision"])
		})
	}
}

func TestChangeStatusIssuedStampsDate(t *testing.T) {
	repo := newFakeOrderRepo(&entities.Order{DocumentID: "ord-1", OrderStatus: constants.StatusReady})
	svc := newOrderServiceForTest(repo, newFakeCache())

	before := time.Now().Add(-time.Second)
	_, err := svc.ChangeStatus(testCtx(), "ord-1", dto.ChangeOrderStatusDTO{Status: constants.StatusIssued})
	require.NoError(t, err)

	raw, ok := repo.lastUpdate["date_of_issue"].(string)
	require.True(t, ok, "дата выдачи должна проставляться при переводе в Выдан")
	issued, err := time.Parse(time.RFC3339, raw)
	require.NoError(t, err)
	assert.True(t, issued.After(before))
}

func TestChangeStatusPlainTransitionKeepsFlags(t *testing.T) {
	repo := newFakeOrderRepo(&entities.Order{DocumentID: "ord-1", OrderStatus: constants.StatusNew})
	svc := newOrderServiceForTest(repo, newFakeCache())

	_, err := svc.ChangeStatus(testCtx(), "ord-1", dto.ChangeOrderStatusDTO{Status: constants.StatusReady})
	require.NoError(t, err)

	_, hasApprove := repo.lastUpdate["is_approve"]
	_, hasRevision := repo.lastUpdate["is_revision"]
	assert.False(t, hasApprove)
	assert.False(t, hasRevision)
}

func TestGetOrdersUsesCacheOnSecondCall(t *testing.T) {
	repo := newFakeOrderRepo(&entities.Order{DocumentID: "ord-1", OrderStatus: constants.StatusNew})
	svc := newOrderServiceForTest(repo, newFakeCache())
	filter := types.Filter{Page: 1, Limit: 25}

	_, _, err := svc.GetOrders(testCtx(), filter)
	require.NoError(t, err)
	_, _, err = svc.GetOrders(testCtx(), filter)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls, "вторая выборка должна прийти из кеша")
}

func TestMutationInvalidatesListCache(t *testing.T) {
	repo := newFakeOrderRepo(&entities.Order{DocumentID: "ord-1", OrderStatus: constants.StatusNew})
	cache := newFakeCache()
	svc := newOrderServiceForTest(repo, cache)
	filter := types.Filter{Page: 1, Limit: 25}

	_, _, err := svc.GetOrders(testCtx(), filter)
	require.NoError(t, err)

	_, err = svc.ChangeStatus(testCtx(), "ord-1", dto.ChangeOrderStatusDTO{Status: constants.StatusReady})
	require.NoError(t, err)

	_, _, err = svc.GetOrders(testCtx(), filter)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls, "после мутации список должен перечитаться из CMS")
}

// Автор сообщения не указан - берётся subject токена из контекста.
func TestAppendChatMessageAuthorFromToken(t *testing.T) {
	repo := newFakeOrderRepo(&entities.Order{DocumentID: "ord-1", OrderStatus: constants.StatusNew})
	svc := newOrderServiceForTest(repo, newFakeCache())
	ctx := context.WithValue(testCtx(), contextkeys.UserIDKey, "master-7")

	_, err := svc.AppendChatMessage(ctx, "ord-1", dto.AppendChatMessageDTO{Message: "Заказчик перезвонит"})
	require.NoError(t, err)

	chat, ok := repo.lastUpdate["chat"].([]entities.ChatMessage)
	require.True(t, ok)
	require.Len(t, chat, 1)
	assert.Equal(t, "master-7", chat[0].User)
	assert.Equal(t, "Заказчик перезвонит", chat[0].Message)
}

func TestAppendChatMessageExplicitAuthorWins(t *testing.T) {
	repo := newFakeOrderRepo(&entities.Order{DocumentID: "ord-1", OrderStatus: constants.StatusNew})
	svc := newOrderServiceForTest(repo, newFakeCache())
	ctx := context.WithValue(testCtx(), contextkeys.UserIDKey, "master-7")

	_, err := svc.AppendChatMessage(ctx, "ord-1", dto.AppendChatMessageDTO{Message: "Готово", User: "Администратор"})
	require.NoError(t, err)

	chat := repo.lastUpdate["chat"].([]entities.ChatMessage)
	require.Len(t, chat, 1)
	assert.Equal(t, "Администратор", chat[0].User)
}

func TestAppendChatMessageWithoutAuthor(t *testing.T) {
	repo := newFakeOrderRepo(&entities.Order{DocumentID: "ord-1", OrderStatus: constants.StatusNew})
	svc := newOrderServiceForTest(repo, newFakeCache())

	_, err := svc.AppendChatMessage(testCtx(), "ord-1", dto.AppendChatMessageDTO{Message: "Аноним"})
	require.Error(t, err)
}

func TestOrdersRequireToken(t *testing.T) {
	svc := newOrderServiceForTest(newFakeOrderRepo(), newFakeCache())

	_, _, err := svc.GetOrders(context.Background(), types.Filter{Page: 1, Limit: 25})
	require.Error(t, err)
}
