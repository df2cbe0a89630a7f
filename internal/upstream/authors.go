package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/royalty-recon/internal/royalty"
)

// AuthorClient fetches the per-head rates, sales and royalty amounts the
// system of record holds for an author and ISBN.
type AuthorClient struct {
	BaseURL string
	HTTP    Doer
}

// AuthorDetails issues GET /author/getAuthorDetails/{author}/{isbn}.
func (c *AuthorClient) AuthorDetails(ctx context.Context, author, isbn string) (royalty.AuthorDetails, error) {
	endpoint := joinURL(c.BaseURL, "author", "getAuthorDetails", url.PathEscape(author), url.PathEscape(isbn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return royalty.AuthorDetails{}, err
	}
	req.Header.Set("Accept", "application/json")

	var details royalty.AuthorDetails
	if err := call(ctx, c.HTTP, "author-details", req, &details); err != nil {
		return royalty.AuthorDetails{}, err
	}
	return details, nil
}
