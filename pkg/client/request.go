package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Do sends a JSON request to path relative to the base URL. A non-nil body is
// encoded as JSON; out, when non-nil, receives the decoded response.
// Responses with status >= 400 are returned as *HTTPError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	req := c.r.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 400 {
		return decodeError(resp)
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Raw sends body as-is and returns the response without looking at the status.
// A body that is valid JSON is labelled application/json.
func (c *Client) Raw(ctx context.Context, method, path string, body []byte) (*resty.Response, error) {
	req := c.r.R().SetContext(ctx)
	if len(body) > 0 {
		if json.Valid(body) {
			req.SetHeader("Content-Type", "application/json")
		}
		req.SetBody(body)
	}
	return req.Execute(method, path)
}

func decodeError(resp *resty.Response) error {
	var apiErr struct {
		Error string `json:"error"`
	}
	body := resp.Body()
	if len(body) > 0 {
		_ = json.Unmarshal(body, &apiErr)
	}
	msg := strings.TrimSpace(apiErr.Error)
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = resp.Status()
	}
	return &HTTPError{StatusCode: resp.StatusCode(), Message: msg}
}

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}
