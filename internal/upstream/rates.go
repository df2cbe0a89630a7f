package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/noah-isme/royalty-recon/internal/royalty"
)

// RatesClient pushes committed rate changes back to the system of record.
type RatesClient struct {
	BaseURL string
	HTTP    Doer
}

// UpdateRates issues POST /author/updateAuthorRates with the selected rows
// and returns the upstream confirmation payload verbatim.
func (c *RatesClient) UpdateRates(ctx context.Context, reqBody royalty.UpdateRatesRequest) (json.RawMessage, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}
	endpoint := joinURL(c.BaseURL, "author", "updateAuthorRates")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return callRaw(ctx, c.HTTP, "update-rates", req)
}

// ResetRates issues POST /author/resetAuthorRates. The endpoint keys off the
// caller's session upstream and takes no body.
func (c *RatesClient) ResetRates(ctx context.Context) (json.RawMessage, error) {
	endpoint := joinURL(c.BaseURL, "author", "resetAuthorRates")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return callRaw(ctx, c.HTTP, "reset-rates", req)
}
