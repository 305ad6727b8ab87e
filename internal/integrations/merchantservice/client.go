package merchantservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с MerchantService
// MerchantService владеет магазинами, услугами и офферами; этот сервис
// читает их метаданные и никогда не изменяет
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента MerchantService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetServiceWithStore получает услугу вместе с её магазином
func (c *Client) GetServiceWithStore(ctx context.Context, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var dto serviceDTO
	if err := c.getJSON(ctx, url, &dto, ErrServiceNotFound); err != nil {
		return nil, err
	}

	svc := toService(&dto)
	if svc.Store == nil {
		return nil, fmt.Errorf("%w: service id=%d has no store attached", ErrInvalidResponse, serviceID)
	}

	return svc, nil
}

// GetOfferWithService получает оффер вместе с его услугой и магазином
func (c *Client) GetOfferWithService(ctx context.Context, offerID int64) (*Offer, error) {
	url := fmt.Sprintf("%s/internal/offers/%d", c.baseURL, offerID)

	var dto offerDTO
	if err := c.getJSON(ctx, url, &dto, ErrOfferNotFound); err != nil {
		return nil, err
	}

	offer := toOffer(&dto)
	if offer.Service == nil || offer.Service.Store == nil {
		return nil, fmt.Errorf("%w: offer id=%d has no service/store attached", ErrInvalidResponse, offerID)
	}

	return offer, nil
}

// ListOffersForService получает все офферы, ссылающиеся на услугу
// Замкнутое множество ID этих офферов используется при загрузке бронирований:
// так бронирование через любой оффер уменьшает общую ёмкость услуги
func (c *Client) ListOffersForService(ctx context.Context, serviceID int64) ([]*Offer, error) {
	url := fmt.Sprintf("%s/internal/services/%d/offers", c.baseURL, serviceID)

	var dtos []offerDTO
	if err := c.getJSON(ctx, url, &dtos, ErrServiceNotFound); err != nil {
		return nil, err
	}

	offers := make([]*Offer, 0, len(dtos))
	for i := range dtos {
		offers = append(offers, toOffer(&dtos[i]))
	}

	return offers, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается на 404
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
