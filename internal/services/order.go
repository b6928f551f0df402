package services

import (
	"context"
	"net/http"
	"time"

	"repair-crm/internal/dto"
	"repair-crm/internal/entities"
	"repair-crm/internal/repositories"
	"repair-crm/pkg/constants"
	apperrors "repair-crm/pkg/errors"
	"repair-crm/pkg/eventbus"
	"repair-crm/pkg/types"
	"repair-crm/pkg/utils"

	"go.uber.org/zap"
)

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error)
	GetAllOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error)
	FindOrder(ctx context.Context, documentID string) (*entities.Order, error)
	CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*entities.Order, error)
	UpdateOrder(ctx context.Context, documentID string, payload dto.UpdateOrderDTO) (*entities.Order, error)
	DeleteOrder(ctx context.Context, documentID string) error
	ChangeStatus(ctx context.Context, documentID string, payload dto.ChangeOrderStatusDTO) (*entities.Order, error)
	AppendChatMessage(ctx context.Context, documentID string, payload dto.AppendChatMessageDTO) (*entities.Order, error)
}

type orderService struct {
	orderRepo repositories.OrderRepositoryInterface
	cache     repositories.CacheRepositoryInterface
	bus       *eventbus.Bus
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	bus *eventbus.Bus,
	cacheTTL time.Duration,
	logger *zap.Logger,
) OrderServiceInterface {
	return &orderService{
		orderRepo: orderRepo,
		cache:     cache,
		bus:       bus,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// fetchPage - одна страница заявок сквозь кеш.
func (s *orderService) fetchPage(ctx context.Context, token string, page, pageSize int, query string) (Page[entities.Order], error) {
	key := pageCacheKey(constants.ResourceOrders, page, pageSize, query)
	if cached, ok := lookupPage[entities.Order](ctx, s.cache, key); ok {
		return cached, nil
	}

	items, total, err := s.orderRepo.List(ctx, token, page, pageSize, query)
	if err != nil {
		return Page[entities.Order]{}, err
	}

	result := Page[entities.Order]{Items: items, Total: total}
	if err := storePage(ctx, s.cache, key, result, s.cacheTTL); err != nil {
		s.logger.Warn("Не удалось закешировать страницу заявок", zap.Error(err))
	}
	return result, nil
}

func (s *orderService) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := s.orderRepo.BuildQuery(filter).Encode()
	page, err := s.fetchPage(ctx, token, filter.Page, filter.Limit, query)
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

// GetAllOrders собирает полную выборку по фильтру: первая страница плюс
// параллельная дозагрузка остальных. Нужна отчётам и статистике, которые
// суммируют по всей отфильтрованной коллекции.
func (s *orderService) GetAllOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	pageSize := filter.Limit
	if pageSize <= 0 {
		pageSize = utils.MaxLimit
	}
	query := s.orderRepo.BuildQuery(filter).Encode()

	first, err := s.fetchPage(ctx, token, 1, pageSize, query)
	if err != nil {
		return nil, 0, err
	}
	return FetchAll(ctx, pageSize, first, func(ctx context.Context, page int) (Page[entities.Order], error) {
		return s.fetchPage(ctx, token, page, pageSize, query)
	})
}

func (s *orderService) FindOrder(ctx context.Context, documentID string) (*entities.Order, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByDocumentID(ctx, token, documentID)
}

func (s *orderService) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*entities.Order, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"title":        payload.Title,
		"orderStatus":  constants.StatusNew,
		"client":       payload.ClientID,
		"device_type":  payload.DeviceType,
		"device_brand": payload.DeviceBrand,
		"device_model": payload.DeviceModel,
		"defect":       payload.Defect,
		"is_approve":   false,
		"is_revision":  false,
	}
	putIfSet(data, "master", payload.MasterID)
	putIfSet(data, "serial_number", payload.SerialNumber)
	putIfSet(data, "appearance", payload.Appearance)
	putIfSet(data, "complectation", payload.Complectation)
	putIfSet(data, "visit_date", payload.VisitDate)
	putIfSet(data, "deadline", payload.Deadline)
	putIfSet(data, "total_cost", payload.TotalCost)
	putIfSet(data, "prepay", payload.Prepay)

	order, err := s.orderRepo.Create(ctx, token, data)
	if err != nil {
		return nil, err
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceOrders, order.DocumentID, "created")
	return order, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, documentID string, payload dto.UpdateOrderDTO) (*entities.Order, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{}
	putIfSet(data, "title", payload.Title)
	putIfSet(data, "master", payload.MasterID)
	putIfSet(data, "device_type", payload.DeviceType)
	putIfSet(data, "device_brand", payload.DeviceBrand)
	putIfSet(data, "device_model", payload.DeviceModel)
	putIfSet(data, "serial_number", payload.SerialNumber)
	putIfSet(data, "appearance", payload.Appearance)
	putIfSet(data, "complectation", payload.Complectation)
	putIfSet(data, "defect", payload.Defect)
	putIfSet(data, "visit_date", payload.VisitDate)
	putIfSet(data, "deadline", payload.Deadline)
	putIfSet(data, "diagnostic_date", payload.DiagnosticDate)
	putIfSet(data, "date_of_issue", payload.DateOfIssue)
	putIfSet(data, "total_cost", payload.TotalCost)
	putIfSet(data, "prepay", payload.Prepay)

	if len(data) == 0 {
		return nil, apperrors.NewBadRequestError("нет полей для обновления")
	}

	order, err := s.orderRepo.Update(ctx, token, documentID, data)
	if err != nil {
		return nil, err
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceOrders, documentID, "updated")
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, documentID string) error {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, token, documentID); err != nil {
		return err
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceOrders, documentID, "deleted")
	return nil
}

// ChangeStatus переводит заявку в новый статус и выставляет флаги
// workflow согласования. Инвариант: is_approve и is_revision меняются
// только здесь, вместе со статусом.
func (s *orderService) ChangeStatus(ctx context.Context, documentID string, payload dto.ChangeOrderStatusDTO) (*entities.Order, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{"orderStatus": payload.Status}
	switch payload.Status {
	case constants.StatusApproval:
		// Заявка уходит на согласование, прошлые решения сбрасываются.
		data["is_approve"] = false
		data["is_revision"] = false
	case constants.StatusInProgress:
		data["is_approve"] = true
		data["is_revision"] = false
	case constants.StatusDiagnostic:
		// Возврат на доработку после отказа в согласовании.
		data["is_approve"] = false
		data["is_revision"] = true
	case constants.StatusIssued:
		data["date_of_issue"] = time.Now().Format(time.RFC3339)
	}

	order, err := s.orderRepo.Update(ctx, token, documentID, data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Статус заявки изменён",
		zap.String("documentId", documentID),
		zap.String("status", payload.Status),
	)
	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceOrders, documentID, "updated")
	return order, nil
}

// AppendChatMessage дописывает сообщение во встроенный чат заявки.
// Чат append-only: мы читаем текущий массив и шлём его целиком с новым
// сообщением в конце - по-другому CMS embedded-массивы не обновляет.
func (s *orderService) AppendChatMessage(ctx context.Context, documentID string, payload dto.AppendChatMessageDTO) (*entities.Order, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.orderRepo.FindByDocumentID(ctx, token, documentID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperrors.NewHttpError(http.StatusNotFound, "заявка не найдена", apperrors.ErrNotFound, nil)
	}

	author := payload.User
	if author == "" {
		if sub, ok := utils.GetUserIDFromCtx(ctx); ok {
			author = sub
		}
	}
	if author == "" {
		return nil, apperrors.NewInvalidInputError("не указан автор сообщения")
	}

	chat := append(current.Chat, entities.ChatMessage{
		Message:  payload.Message,
		User:     author,
		Datetime: time.Now().Format(time.RFC3339),
	})

	order, err := s.orderRepo.Update(ctx, token, documentID, map[string]interface{}{"chat": chat})
	if err != nil {
		return nil, err
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceOrders, documentID, "updated")
	return order, nil
}

func putIfSet[T any](data map[string]interface{}, key string, value *T) {
	if value != nil {
		data[key] = *value
	}
}
