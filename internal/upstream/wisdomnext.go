package upstream

import (
	"context"
	"net/http"

	"github.com/noah-isme/royalty-recon/internal/royalty"
)

// WisdomNextClient pulls the latest-rates comparison payload from the
// WisdomNext feed.
type WisdomNextClient struct {
	BaseURL string
	HTTP    Doer
}

// LatestComparison issues GET /wisdomnext/callWisdomNext.
func (c *WisdomNextClient) LatestComparison(ctx context.Context) (royalty.ComparisonResponse, error) {
	endpoint := joinURL(c.BaseURL, "wisdomnext", "callWisdomNext")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return royalty.ComparisonResponse{}, err
	}
	req.Header.Set("Accept", "application/json")

	var resp royalty.ComparisonResponse
	if err := call(ctx, c.HTTP, "wisdomnext", req, &resp); err != nil {
		return royalty.ComparisonResponse{}, err
	}
	return resp, nil
}
