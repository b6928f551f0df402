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
	"repair-crm/pkg/strapi"
	"repair-crm/pkg/types"
	"repair-crm/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ledgerResources - все три журнальных ресурса CMS.
var ledgerResources = []string{
	constants.ResourceIncomes,
	constants.ResourceOutcomes,
	constants.ResourceManualIO,
}

func IsLedgerResource(resource string) bool {
	for _, r := range ledgerResources {
		if r == resource {
			return true
		}
	}
	return false
}

type LedgerServiceInterface interface {
	GetEntries(ctx context.Context, resource string, filter types.Filter) ([]entities.LedgerEntry, uint64, error)
	GetAllEntries(ctx context.Context, resource string, filter types.Filter) ([]entities.LedgerEntry, uint64, error)
	GetAllLedger(ctx context.Context, filter types.Filter) ([]entities.LedgerEntry, error)
	CreateEntry(ctx context.Context, payload dto.CreateLedgerEntryDTO) (*entities.LedgerEntry, error)
	ApproveEntry(ctx context.Context, resource, documentID string) (*entities.LedgerEntry, error)
	DeleteEntry(ctx context.Context, resource, documentID string) error
	PostManual(ctx context.Context, payload dto.PostLedgerDTO) (*entities.LedgerEntry, error)
	RepairDates(ctx context.Context) (int, error)
}

type ledgerService struct {
	ledgerRepo repositories.LedgerRepositoryInterface
	userRepo   repositories.UserRepositoryInterface
	cache      repositories.CacheRepositoryInterface
	bus        *eventbus.Bus
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewLedgerService(
	ledgerRepo repositories.LedgerRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	bus *eventbus.Bus,
	cacheTTL time.Duration,
	logger *zap.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
		cache:      cache,
		bus:        bus,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func (s *ledgerService) fetchPage(ctx context.Context, token, resource string, page, pageSize int, query string) (Page[entities.LedgerEntry], error) {
	key := pageCacheKey(resource, page, pageSize, query)
	if cached, ok := lookupPage[entities.LedgerEntry](ctx, s.cache, key); ok {
		return cached, nil
	}

	items, total, err := s.ledgerRepo.List(ctx, token, resource, page, pageSize, query)
	if err != nil {
		return Page[entities.LedgerEntry]{}, err
	}

	result := Page[entities.LedgerEntry]{Items: items, Total: total}
	if err := storePage(ctx, s.cache, key, result, s.cacheTTL); err != nil {
		s.logger.Warn("Не удалось закешировать страницу журнала", zap.Error(err))
	}
	return result, nil
}

func (s *ledgerService) GetEntries(ctx context.Context, resource string, filter types.Filter) ([]entities.LedgerEntry, uint64, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := s.ledgerRepo.BuildQuery(filter).Encode()
	page, err := s.fetchPage(ctx, token, resource, filter.Page, filter.Limit, query)
	if err != nil {
		return nil, 0, err
	}
	return page.Items, page.Total, nil
}

func (s *ledgerService) GetAllEntries(ctx context.Context, resource string, filter types.Filter) ([]entities.LedgerEntry, uint64, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	pageSize := filter.Limit
	if pageSize <= 0 {
		pageSize = utils.MaxLimit
	}
	query := s.ledgerRepo.BuildQuery(filter).Encode()

	first, err := s.fetchPage(ctx, token, resource, 1, pageSize, query)
	if err != nil {
		return nil, 0, err
	}
	return FetchAll(ctx, pageSize, first, func(ctx context.Context, page int) (Page[entities.LedgerEntry], error) {
		return s.fetchPage(ctx, token, resource, page, pageSize, query)
	})
}

// GetAllLedger собирает полный журнал по всем трём ресурсам сразу.
func (s *ledgerService) GetAllLedger(ctx context.Context, filter types.Filter) ([]entities.LedgerEntry, error) {
	var merged []entities.LedgerEntry
	for _, resource := range ledgerResources {
		entries, _, err := s.GetAllEntries(ctx, resource, filter)
		if err != nil {
			return nil, err
		}
		merged = append(merged, entries...)
	}
	return merged, nil
}

// resourceFor выбирает ресурс CMS для новой записи: привязанные к заявке
// записи живут в incomes/outcomes, остальные - ручные.
func resourceFor(payload dto.CreateLedgerEntryDTO) string {
	if payload.OrderID == nil {
		return constants.ResourceManualIO
	}
	if payload.Type == constants.LedgerTypeOutcome {
		return constants.ResourceOutcomes
	}
	return constants.ResourceIncomes
}

func (s *ledgerService) CreateEntry(ctx context.Context, payload dto.CreateLedgerEntryDTO) (*entities.LedgerEntry, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	resource := resourceFor(payload)
	data := map[string]interface{}{
		"count":      payload.Count,
		"type":       payload.Type,
		"isApproved": payload.IsApproved,
	}
	putIfSet(data, "note", payload.Note)
	putIfSet(data, "order", payload.OrderID)
	putIfSet(data, "user", payload.UserID)
	putIfSet(data, "createdDate", payload.CreatedDate)

	entry, err := s.ledgerRepo.Create(ctx, token, resource, data)
	if err != nil {
		return nil, err
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, resource, entry.DocumentID, "created")
	return entry, nil
}

// ApproveEntry утверждает запись. Только утверждённые записи влияют на
// баланс, поэтому вместе с флагом досылается дельта баланса сотрудника.
// Если баланс обновить не удалось, флаг откатывается - иначе запись
// осталась бы утверждённой, но не учтённой. Повторное утверждение - no-op:
// ретрай клиента не должен сдвигать баланс второй раз.
func (s *ledgerService) ApproveEntry(ctx context.Context, resource, documentID string) (*entities.LedgerEntry, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.ledgerRepo.FindByDocumentID(ctx, token, resource, documentID)
	if err != nil {
		return nil, err
	}
	if current == nil || current.DocumentID == "" {
		return nil, apperrors.NewNotFoundError("запись журнала не найдена")
	}
	if current.IsApproved {
		return current, nil
	}

	entry, err := s.ledgerRepo.Update(ctx, token, resource, documentID, map[string]interface{}{"isApproved": true})
	if err != nil {
		return nil, err
	}

	if entry.User != nil {
		if err := s.applyToBalance(ctx, token, entry); err != nil {
			if _, revertErr := s.ledgerRepo.Update(ctx, token, resource, documentID, map[string]interface{}{"isApproved": false}); revertErr != nil {
				s.logger.Error("Компенсация не удалась: запись утверждена, баланс не обновлён",
					zap.String("resource", resource),
					zap.String("documentId", documentID),
					zap.Error(revertErr),
				)
			}
			return nil, err
		}
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, resource, documentID, "updated")
	return entry, nil
}

func (s *ledgerService) DeleteEntry(ctx context.Context, resource, documentID string) error {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := s.ledgerRepo.Delete(ctx, token, resource, documentID); err != nil {
		return err
	}

	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, resource, documentID, "deleted")
	return nil
}

// PostManual - проводка ручной записи против сотрудника: создать запись,
// затем сдвинуть баланс. Атомарности CMS не даёт, поэтому при неудаче
// второго шага только что созданная запись удаляется. Ключ проводки
// остаётся в записи для разбора инцидентов.
func (s *ledgerService) PostManual(ctx context.Context, payload dto.PostLedgerDTO) (*entities.LedgerEntry, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByDocumentID(ctx, token, payload.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("сотрудник не найден")
	}

	postingKey := uuid.NewString()
	data := map[string]interface{}{
		"count":       payload.Count,
		"type":        payload.Type,
		"user":        payload.UserID,
		"isApproved":  true,
		"posting_key": postingKey,
	}
	putIfSet(data, "note", payload.Note)
	putIfSet(data, "createdDate", payload.CreatedDate)

	entry, err := s.ledgerRepo.Create(ctx, token, constants.ResourceManualIO, data)
	if err != nil {
		return nil, err
	}

	if err := s.applyToBalance(ctx, token, entry); err != nil {
		if delErr := s.ledgerRepo.Delete(ctx, token, constants.ResourceManualIO, entry.DocumentID); delErr != nil {
			s.logger.Error("Компенсация не удалась: запись создана, баланс не обновлён",
				zap.String("posting_key", postingKey),
				zap.String("documentId", entry.DocumentID),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.logger.Info("Ручная проводка выполнена",
		zap.String("posting_key", postingKey),
		zap.String("user", payload.UserID),
		zap.Float64("count", payload.Count),
		zap.String("type", payload.Type),
	)
	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceManualIO, entry.DocumentID, "created")
	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceUsers, payload.UserID, "updated")
	return entry, nil
}

func (s *ledgerService) applyToBalance(ctx context.Context, token string, entry *entities.LedgerEntry) error {
	userDocID := entry.User.DocumentID
	user, err := s.userRepo.FindByDocumentID(ctx, token, userDocID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFoundError("сотрудник не найден")
	}

	_, err = s.userRepo.UpdateBalance(ctx, token, userDocID, user.Balance+entry.SignedAmount())
	return err
}

// RepairDates - ручной инструмент починки legacy-записей: у старых строк
// журнала нет бизнес-даты createdDate, из-за чего они выпадают из
// периодных выборок. Бэкфилл берёт системную createdAt.
func (s *ledgerService) RepairDates(ctx context.Context) (int, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, resource := range ledgerResources {
		query := strapi.NewQuery().
			Where("createdDate", strapi.OpNull, "true").
			Sort("createdAt:asc").
			Encode()

		first, err := s.fetchUncachedPage(ctx, token, resource, 1, utils.MaxLimit, query)
		if err != nil {
			return repaired, err
		}
		entries, _, err := FetchAll(ctx, utils.MaxLimit, first, func(ctx context.Context, page int) (Page[entities.LedgerEntry], error) {
			return s.fetchUncachedPage(ctx, token, resource, page, utils.MaxLimit, query)
		})
		if err != nil {
			return repaired, err
		}

		for _, entry := range entries {
			data := map[string]interface{}{"createdDate": entry.CreatedAt.Format(time.RFC3339)}
			if _, err := s.ledgerRepo.Update(ctx, token, resource, entry.DocumentID, data); err != nil {
				return repaired, err
			}
			repaired++
		}

		if len(entries) > 0 {
			invalidateAndPublish(ctx, s.cache, s.bus, s.logger, resource, "", "updated")
		}
	}

	s.logger.Info("Починка дат журнала завершена", zap.Int("repaired", repaired))
	return repaired, nil
}

// fetchUncachedPage - страницы для починки читаются мимо кеша: выборка
// сразу же инвалидируется собственными обновлениями.
func (s *ledgerService) fetchUncachedPage(ctx context.Context, token, resource string, page, pageSize int, query string) (Page[entities.LedgerEntry], error) {
	items, total, err := s.ledgerRepo.List(ctx, token, resource, page, pageSize, query)
	if err != nil {
		return Page[entities.LedgerEntry]{}, err
	}
	return Page[entities.LedgerEntry]{Items: items, Total: total}, nil
}
