package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

type API struct {
	client  *http.Client
	baseURL string
}

func NewAPI(baseURL string) *API {
	return &API{client: http.DefaultClient, baseURL: baseURL}
}

func NewAPIWithClient(baseURL string, client *http.Client) *API {
	return &API{client: client, baseURL: baseURL}
}

func (a *API) Get(ctx context.Context, path string, params url.Values, v any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	target := fmt.Sprintf("%s%s", a.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "mangaverse")

	resp, err := a.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", target)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, URL: target}
	}
	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(v), "failed to decode %s", target)
}
