package services

import (
	"context"

	"repair-crm/internal/dto"
	"repair-crm/internal/entities"
	"repair-crm/internal/repositories"
	apperrors "repair-crm/pkg/errors"
	"repair-crm/pkg/utils"

	"go.uber.org/zap"
)

type SettingsServiceInterface interface {
	GetSettings(ctx context.Context) (*dto.SettingsResponseDTO, error)
	UpdateSettings(ctx context.Context, payload dto.UpdateSettingsDTO) (*dto.SettingsResponseDTO, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepositoryInterface
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo repositories.SettingsRepositoryInterface, logger *zap.Logger) SettingsServiceInterface {
	return &settingsService{settingsRepo: settingsRepo, logger: logger}
}

func (s *settingsService) GetSettings(ctx context.Context) (*dto.SettingsResponseDTO, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	return toSettingsDTO(settings), nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, payload dto.UpdateSettingsDTO) (*dto.SettingsResponseDTO, error) {
	token, err := utils.GetTokenFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{}
	putIfSet(data, "refusal_reasons", payload.RefusalReasons)
	putIfSet(data, "equipment_types", payload.EquipmentTypes)
	putIfSet(data, "income_categories", payload.IncomeCategories)
	putIfSet(data, "outcome_categories", payload.OutcomeCategories)
	if len(data) == 0 {
		return nil, apperrors.NewBadRequestError("нет полей для обновления")
	}

	settings, err := s.settingsRepo.Update(ctx, token, data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Справочники обновлены")
	return toSettingsDTO(settings), nil
}

func toSettingsDTO(settings *entities.Settings) *dto.SettingsResponseDTO {
	return &dto.SettingsResponseDTO{
		RefusalReasons:    entities.SplitList(settings.RefusalReasons),
		EquipmentTypes:    entities.SplitList(settings.EquipmentTypes),
		IncomeCategories:  entities.SplitList(settings.IncomeCategories),
		OutcomeCategories: entities.SplitList(settings.OutcomeCategories),
	}
}
