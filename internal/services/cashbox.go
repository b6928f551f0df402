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

type CashboxServiceInterface interface {
	GetCashbox(ctx context.Context) (*entities.Cashbox, error)
	GetTransactions(ctx context.Context, filter types.Filter) ([]entities.CashTransaction, uint64, error)
	Operate(ctx context.Context, payload dto.CashboxOperationDTO) (*entities.Cashbox, error)
}

type cashboxService struct {
	cashboxRepo repositories.CashboxRepositoryInterface
	cache       repositories.CacheRepositoryInterface
	bus         *eventbus.Bus
	cacheTTL    time.Duration
	logger      *zap.Logger
}

func NewCashboxService(
	cashboxRepo repositories.CashboxRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	bus *eventbus.Bus,
	cacheTTL time.Duration,
	logger *zap.Logger,
) CashboxServiceInterface {
	return &cashboxService{
		cashboxRepo: cashboxRepo,
		cache:       cache,
		bus:         bus,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (s *cashboxService) GetCashbox(ctx context.Context) (*entities.Cashbox, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.cashboxRepo.GetCashbox(ctx, token)
}

func (s *cashboxService) GetTransactions(ctx context.Context, filter types.Filter) ([]entities.CashTransaction, uint64, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	key := pageCacheKey(constants.ResourceCashTransactions, filter.Page, filter.Limit, "")
	if cached, ok := lookupPage[entities.CashTransaction](ctx, s.cache, key); ok {
		return cached.Items, cached.Total, nil
	}

	transactions, total, err := s.cashboxRepo.ListTransactions(ctx, token, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, err
	}

	if err := storePage(ctx, s.cache, key, Page[entities.CashTransaction]{Items: transactions, Total: total}, s.cacheTTL); err != nil {
		s.logger.Warn("Не удалось закешировать журнал кассы", zap.Error(err))
	}
	return transactions, total, nil
}

// Operate выполняет кассовую операцию: запись в журнал, затем новый
// баланс. Приход и Расход двигают баланс на сумму, Корректировка
// устанавливает его принудительно. Если баланс обновить не удалось,
// журнальная запись удаляется.
func (s *cashboxService) Operate(ctx context.Context, payload dto.CashboxOperationDTO) (*entities.Cashbox, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	cashbox, err := s.cashboxRepo.GetCashbox(ctx, token)
	if err != nil {
		return nil, err
	}

	var newBalance float64
	switch payload.Operation {
	case constants.CashboxOpIncome, constants.CashboxOpOutcome:
		// Дельтовые операции на ноль смысла не имеют, а корректировка
		// в ноль - легитимное обнуление кассы.
		if payload.Amount <= 0 {
			return nil, apperrors.NewBadRequestError("сумма операции должна быть больше нуля")
		}
		if payload.Operation == constants.CashboxOpIncome {
			newBalance = cashbox.Balance + payload.Amount
		} else {
			newBalance = cashbox.Balance - payload.Amount
		}
	case constants.CashboxOpCorrection:
		newBalance = payload.Amount
	default:
		return nil, apperrors.NewBadRequestError("неизвестная кассовая операция")
	}

	data := map[string]interface{}{
		"operation": payload.Operation,
		"amount":    payload.Amount,
	}
	putIfSet(data, "note", payload.Note)
	putIfSet(data, "user", payload.UserID)

	transaction, err := s.cashboxRepo.CreateTransaction(ctx, token, data)
	if err != nil {
		return nil, err
	}

	updated, err := s.cashboxRepo.UpdateBalance(ctx, token, newBalance)
	if err != nil {
		if delErr := s.cashboxRepo.DeleteTransaction(ctx, token, transaction.DocumentID); delErr != nil {
			s.logger.Error("Компенсация не удалась: кассовая операция записана, баланс не обновлён",
				zap.String("documentId", transaction.DocumentID),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	s.logger.Info("Кассовая операция выполнена",
		zap.String("operation", payload.Operation),
		zap.Float64("amount", payload.Amount),
		zap.Float64("balance", updated.Balance),
	)
	invalidateAndPublish(ctx, s.cache, s.bus, s.logger, constants.ResourceCashTransactions, transaction.DocumentID, "created")
	return updated, nil
}
