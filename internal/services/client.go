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

type ClientServiceInterface interface {
	GetClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error)
	GetAllClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error)
	FindClient(ctx context.Context, documentID string) (*entities.Client, error)
	CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*entities.Client, error)
	UpdateClient(ctx context.Context, documentID string, payload dto.UpdateClientDTO) (*entities.Client, error)
	DeleteClient(ctx context.Context, documentID string) error
}

type clientService struct {
	clientRepo repositories.ClientRepositoryInterface
	cache      repositories.CacheRepositoryInterface
	bus        *eventbus.Bus
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewClientService(
	clientRepo repositories.ClientRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	bus *eventbus.Bus,
	cacheTTL time.Duration,
	logger *zap.Logger,
) ClientServiceInterface {
	return &clientService{
		clientRepo: clientRepo,
		cache:      cache,
		bus:        bus,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func (s *clientService) fetchPage(ctx context.Context, token string, page, pageSize int, query string) (Page[entities.Client], error) {
	key := pageCacheKey(constants.ResourceClients, page, pageSize, query)
	if cached, ok := lookupPage[entities.Client](ctx, s.cache, key); ok {
		return cached, nil
	}

	items, total, err := s.clientRepo.List(ctx, token, page, pageSize, query)
	if err != nil {
		return Page[entities.Client]{}, err
	}

	result := Page[entities.Client]{Items: items, Total: total}
	if err := storePage(ctx, s.cache, key, result, s.cacheTTL); err != nil {
		s.logger.Warn("Не удалось закешировать страницу клиентов", zap.Error(err))
	}
	return result, nil
}

func (s *clientService) GetClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := s.clientRepo.BuildQuery(filter).Encode()
	page, err := s.fetchPage(ctx, token, filter.Page, filter.Limit, query)
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

func (s *clientService) GetAllClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	pageSize := filter.Limit
	if pageSize <= 0 {
		pageSize = utils.MaxLimit
	}
	query := s.clientRepo.BuildQuery(filter).Encode()

	first, err := s.fetchPage(ctx, token, 1, pageSize, query)
	if err != nil {
		return nil, 0, err
	}
	return FetchAll(ctx, pageSize, first, func(ctx context.Context, page int) (Page[entities.Client], error) {
		return s.fetchPage(ctx, token, page, pageSize, query)
	})
}

func (s *clientService) FindClient(ctx context.Context, documentID string) (*entities.Client, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.clientRepo.FindByDocumentID(ctx, token, documentID)
}

// CreateClient создаёт клиента, предварительно ища дубликат по
// нормализованным цифрам телефона. Дубликат - это конфликт, существующая
// запись возвращается в теле ошибки.
func (s *clientService) CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*entities.Client, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	digits := utils.NormalizePhone(payload.Phone)
	if digits != "" {
		existing, err := s.clientRepo.FindByPhoneDigits(ctx, token, digits)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			httpErr := apperrors.NewHttpError(http.StatusConflict, "клиент с таким телефоном уже существует", nil, nil)
			httpErr.Details = existing
			return nil, httpErr
		}
	}

	data := map[string]interface{}{
		"name":  payload.Name,
		"phone": payload.Phone,
	}
	putIfSet(data, "address", payload.Address)
	if payload.Rating > 0 {
		data["rating"] = payload.Rating
	}

	client, err := s.clientRepo.Create(ctx, token, data)
	if err != nil {
		return nil, err
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceClients, client.DocumentID, "created")
	return client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, documentID string, payload dto.UpdateClientDTO) (*entities.Client, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{}
	putIfSet(data, "name", payload.Name)
	putIfSet(data, "phone", payload.Phone)
	putIfSet(data, "address", payload.Address)
	putIfSet(data, "rating", payload.Rating)
	if len(data) == 0 {
		return nil, apperrors.NewBadRequestError("нет полей для обновления")
	}

	client, err := s.clientRepo.Update(ctx, token, documentID, data)
	if err != nil {
		return nil, err
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceClients, documentID, "updated")
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, documentID string) error {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := s.clientRepo.Delete(ctx, token, documentID); err != nil {
		return err
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceClients, documentID, "deleted")
	return nil
}
