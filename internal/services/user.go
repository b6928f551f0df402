package services

import (
	"context"
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

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	GetMasters(ctx context.Context) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, documentID string) (*entities.User, error)
	UpdateUser(ctx context.Context, documentID string, payload dto.UpdateUserDTO) (*entities.User, error)
	SetBlocked(ctx context.Context, documentID string, blocked bool) (*entities.User, error)
}

type userService struct {
	userRepo repositories.UserRepositoryInterface
	cache    repositories.CacheRepositoryInterface
	bus      *eventbus.Bus
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	bus *eventbus.Bus,
	cacheTTL time.Duration,
	logger *zap.Logger,
) UserServiceInterface {
	return &userService{
		userRepo: userRepo,
		cache:    cache,
		bus:      bus,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (s *userService) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := s.userRepo.BuildQuery(filter).Encode()
	key := pageCacheKey(constants.ResourceUsers, filter.Page, filter.Limit, query)
	if cached, ok := lookupPage[entities.User](ctx, s.cache, key); ok {
		return cached.Items, cached.Total, nil
	}

	users, total, err := s.userRepo.List(ctx, token, filter.Page, filter.Limit, query)
	if err != nil {
		return nil, 0, err
	}

	if err := storePage(ctx, s.cache, key, Page[entities.User]{Items: users, Total: total}, s.cacheTTL); err != nil {
		s.logger.Warn("Не удалось закешировать страницу сотрудников", zap.Error(err))
	}
	return users, total, nil
}

// GetMasters - список мастеров (роль 1). Сотрудников немного, одна
// страница максимального размера покрывает всех.
func (s *userService) GetMasters(ctx context.Context) ([]entities.User, uint64, error) {
	filter := repositories.MastersFilter()
	filter.Page = 1
	filter.Limit = utils.MaxLimit
	return s.GetUsers(ctx, filter)
}

func (s *userService) FindUser(ctx context.Context, documentID string) (*entities.User, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindByDocumentID(ctx, token, documentID)
}

func (s *userService) UpdateUser(ctx context.Context, documentID string, payload dto.UpdateUserDTO) (*entities.User, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{}
	putIfSet(data, "name", payload.Name)
	putIfSet(data, "phone", payload.Phone)
	putIfSet(data, "email", payload.Email)
	putIfSet(data, "blocked", payload.Blocked)
	putIfSet(data, "balance", payload.Balance)
	if len(data) == 0 {
		return nil, apperrors.NewBadRequestError("нет полей для обновления")
	}

	user, err := s.userRepo.Update(ctx, token, documentID, data)
	if err != nil {
		return nil, err
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceUsers, documentID, "updated")
	return user, nil
}

func (s *userService) SetBlocked(ctx context.Context, documentID string, blocked bool) (*entities.User, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Update(ctx, token, documentID, map[string]interface{}{"blocked": blocked})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Изменена блокировка сотрудника",
		zap.String("documentId", documentID),
		zap.Bool("blocked", blocked),
	)
	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceUsers, documentID, "updated")
	return user, nil
}
