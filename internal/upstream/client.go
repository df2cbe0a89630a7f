// Package upstream holds the HTTP clients for the three services the
// reconciliation flow depends on: the author directory, the WisdomNext
// comparison feed and the rates update endpoint. Each client speaks the
// upstream wire contract and maps transport failures onto the shared
// error envelope.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/noah-isme/royalty-recon/internal/common"
	"github.com/noah-isme/royalty-recon/internal/obs"
	"github.com/noah-isme/royalty-recon/internal/resilience"
)

const maxResponseBytes = 1 << 20

// Doer is the request execution surface the clients need. It is satisfied
// by resilience.HTTPClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

var _ Doer = resilience.HTTPClient{}

// call issues the request, enforces a 2xx status and decodes the body into
// out when out is non-nil. Every outcome is recorded against the endpoint
// metric label.
func call(ctx context.Context, doer Doer, endpoint string, req *http.Request, out any) error {
	resp, err := doer.Do(ctx, req)
	if err != nil {
		obs.ObserveUpstream(endpoint, "unavailable")
		return common.UpstreamUnavailable(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		obs.ObserveUpstream(endpoint, "unavailable")
		return common.UpstreamUnavailable(endpoint, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		obs.ObserveUpstream(endpoint, "status")
		return common.UpstreamStatus(endpoint, resp.StatusCode)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			obs.ObserveUpstream(endpoint, "shape")
			return common.UpstreamShape(endpoint, err)
		}
	}
	obs.ObserveUpstream(endpoint, "ok")
	return nil
}

// callRaw behaves like call but returns the raw response body so callers can
// pass upstream confirmation payloads through untouched.
func callRaw(ctx context.Context, doer Doer, endpoint string, req *http.Request) (json.RawMessage, error) {
	resp, err := doer.Do(ctx, req)
	if err != nil {
		obs.ObserveUpstream(endpoint, "unavailable")
		return nil, common.UpstreamUnavailable(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		obs.ObserveUpstream(endpoint, "unavailable")
		return nil, common.UpstreamUnavailable(endpoint, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		obs.ObserveUpstream(endpoint, "status")
		return nil, common.UpstreamStatus(endpoint, resp.StatusCode)
	}
	obs.ObserveUpstream(endpoint, "ok")
	if len(body) == 0 {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

func joinURL(base string, parts ...string) string {
	u := strings.TrimRight(strings.TrimSpace(base), "/")
	for _, p := range parts {
		u = fmt.Sprintf("%s/%s", u, strings.Trim(p, "/"))
	}
	return u
}
