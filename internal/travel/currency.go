package travel

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// CurrencyClient fetches the USD-base conversion-rate table and selects one
// target code from it.
type CurrencyClient struct {
	baseURL string
	client  *http.Client
}

const currencyBase = "USD"

// NewCurrencyClient constructs a CurrencyClient for the given rates endpoint.
// The endpoint returns the full table for the USD base.
func NewCurrencyClient(ratesURL string) *CurrencyClient {
	return &CurrencyClient{baseURL: ratesURL, client: newHTTPClient()}
}

type ratesResponse struct {
	Rates              map[string]float64 `json:"rates"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	Error              *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Rate retrieves the conversion rate from USD to the given target code.
// A code absent from the table yields ErrNotFound.
func (c *CurrencyClient) Rate(ctx context.Context, code string) (*CurrencyQuote, error) {
	var raw ratesResponse
	if err := doGet(ctx, c.client, "currency rates", c.baseURL, nil, &raw); err != nil {
		return nil, fmt.Errorf("currency rates fetch: %w", err)
	}
	if raw.Error != nil {
		return nil, fmt.Errorf("currency rates fetch: %s", raw.Error.Message)
	}

	rate, ok := raw.Rates[code]
	if !ok {
		return nil, fmt.Errorf("currency %q: %w", code, ErrNotFound)
	}

	updated := time.Now().UTC()
	if raw.TimeLastUpdateUnix > 0 {
		updated = time.Unix(raw.TimeLastUpdateUnix, 0).UTC()
	}

	return &CurrencyQuote{
		Code:      code,
		Rate:      rate,
		Base:      currencyBase,
		UpdatedAt: updated,
	}, nil
}
