package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "repair-crm/pkg/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client - тонкий HTTP-клиент CMS поверх resty.
// Токен не хранится: каждый вызов получает bearer текущего запроса.
// Ретраев нет: ошибка сразу уходит наверх, наверху её покажут пользователю.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &Client{http: httpClient, logger: logger}
}

// ListResult - одна страница списочного ответа CMS.
type ListResult struct {
	Items json.RawMessage
	Total uint64
}

type listEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Pagination struct {
			Page     int    `json:"page"`
			PageSize int    `json:"pageSize"`
			Total    uint64 `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

type singleEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

// List запрашивает одну страницу ресурса. query - уже закодированная
// строка фильтров/сортировки/populate (см. Query.Encode).
func (c *Client) List(ctx context.Context, token, resource string, page, pageSize int, query string) (ListResult, error) {
	requestURL := "/api/" + resource + "?" + PaginationParams(page, pageSize)
	if query != "" {
		requestURL += "&" + query
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(requestURL)
	if err != nil {
		return ListResult{}, fmt.Errorf("запрос списка %s: %w", resource, err)
	}
	if resp.IsError() {
		return ListResult{}, c.upstreamError(resource, resp)
	}

	var envelope listEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return ListResult{}, fmt.Errorf("разбор ответа %s: %w", resource, err)
	}
	return ListResult{Items: envelope.Data, Total: envelope.Meta.Pagination.Total}, nil
}

// Find запрашивает одну запись по documentId.
func (c *Client) Find(ctx context.Context, token, resource, documentID, query string) (json.RawMessage, error) {
	requestURL := "/api/" + resource + "/" + documentID
	if query != "" {
		requestURL += "?" + query
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("запрос %s/%s: %w", resource, documentID, err)
	}
	if resp.IsError() {
		return nil, c.upstreamError(resource, resp)
	}

	return unwrapSingle(resp.Body(), resource)
}

// GetSingle запрашивает singleton-ресурс (setting, cashbox).
func (c *Client) GetSingle(ctx context.Context, token, resource, query string) (json.RawMessage, error) {
	requestURL := "/api/" + resource
	if query != "" {
		requestURL += "?" + query
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("запрос %s: %w", resource, err)
	}
	if resp.IsError() {
		return nil, c.upstreamError(resource, resp)
	}

	return unwrapSingle(resp.Body(), resource)
}

// Create создаёт запись. Мутации CMS ходят в конверте {data: {...}}.
func (c *Client) Create(ctx context.Context, token, resource string, data interface{}) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]interface{}{"data": data}).
		Post("/api/" + resource)
	if err != nil {
		return nil, fmt.Errorf("создание %s: %w", resource, err)
	}
	if resp.IsError() {
		return nil, c.upstreamError(resource, resp)
	}

	return unwrapSingle(resp.Body(), resource)
}

// Update обновляет запись по documentId.
func (c *Client) Update(ctx context.Context, token, resource, documentID string, data interface{}) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]interface{}{"data": data}).
		Put("/api/" + resource + "/" + documentID)
	if err != nil {
		return nil, fmt.Errorf("обновление %s/%s: %w", resource, documentID, err)
	}
	if resp.IsError() {
		return nil, c.upstreamError(resource, resp)
	}

	return unwrapSingle(resp.Body(), resource)
}

// UpdateSingle обновляет singleton-ресурс.
func (c *Client) UpdateSingle(ctx context.Context, token, resource string, data interface{}) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]interface{}{"data": data}).
		Put("/api/" + resource)
	if err != nil {
		return nil, fmt.Errorf("обновление %s: %w", resource, err)
	}
	if resp.IsError() {
		return nil, c.upstreamError(resource, resp)
	}

	return unwrapSingle(resp.Body(), resource)
}

// Delete удаляет запись по documentId.
func (c *Client) Delete(ctx context.Context, token, resource, documentID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		Delete("/api/" + resource + "/" + documentID)
	if err != nil {
		return fmt.Errorf("удаление %s/%s: %w", resource, documentID, err)
	}
	if resp.IsError() {
		return c.upstreamError(resource, resp)
	}
	return nil
}

func unwrapSingle(body []byte, resource string) (json.RawMessage, error) {
	var envelope singleEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("разбор ответа %s: %w", resource, err)
	}
	return envelope.Data, nil
}

func (c *Client) upstreamError(resource string, resp *resty.Response) error {
	var envelope errorEnvelope
	message := ""
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil {
		message = envelope.Error.Message
	}
	if message == "" {
		message = string(resp.Body())
	}

	c.logger.Warn("CMS вернула ошибку",
		zap.String("resource", resource),
		zap.Int("status", resp.StatusCode()),
		zap.String("message", message),
	)

	return apperrors.NewUpstreamError(resp.StatusCode(), message,
		fmt.Errorf("CMS %s: статус %d", resource, resp.StatusCode()))
}
