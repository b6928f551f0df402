package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"repair-crm/internal/entities"
	"repair-crm/pkg/constants"
)

type SettingsRepositoryInterface interface {
	Get(ctx context.Context, token string) (*entities.Settings, error)
	Update(ctx context.Context, token string, data map[string]interface{}) (*entities.Settings, error)
}

type settingsRepository struct {
	api settingsAPI
}

type settingsAPI interface {
	GetSingle(ctx context.Context, token, resource, query string) (json.RawMessage, error)
	UpdateSingle(ctx context.Context, token, resource string, data interface{}) (json.RawMessage, error)
}

func NewSettingsRepository(api settingsAPI) SettingsRepositoryInterface {
	return &settingsRepository{api: api}
}

func (r *settingsRepository) Get(ctx context.Context, token string) (*entities.Settings, error) {
	raw, err := r.api.GetSingle(ctx, token, constants.ResourceSetting, "")
	if err != nil {
		return nil, err
	}
	return decodeSettings(raw)
}

func (r *settingsRepository) Update(ctx context.Context, token string, data map[string]interface{}) (*entities.Settings, error) {
	raw, err := r.api.UpdateSingle(ctx, token, constants.ResourceSetting, data)
	if err != nil {
		return nil, err
	}
	return decodeSettings(raw)
}

func decodeSettings(raw json.RawMessage) (*entities.Settings, error) {
	var settings entities.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("разбор настроек: %w", err)
	}
	return &settings, nil
}
