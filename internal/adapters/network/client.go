// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

// Package network implements the NetworkClient port over net/http.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// DefaultUserAgent is sent on every request. The catalog rejects
// non-browser agents, so this mimics a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultTimeout bounds a single request when the caller sets none.
const DefaultTimeout = 3 * time.Minute

// HTTPClient implements domain.NetworkClient.
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates a client with the given request timeout. Proxy
// settings are taken from the environment (HTTP_PROXY, HTTPS_PROXY,
// NO_PROXY). A zero timeout means DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
			},
		},
		userAgent: DefaultUserAgent,
	}
}

// SetUserAgent overrides the User-Agent header for all requests.
func (c *HTTPClient) SetUserAgent(agent string) {
	if agent != "" {
		c.userAgent = agent
	}
}

// Get fetches a URL and returns the response body. A non-200 status is
// returned as an HTTPError so the bare status becomes the failure
// reason downstream.
func (c *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.HTTPError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s: %w", domain.ErrNetwork, url, err)
	}

	return body, nil
}

// Head issues a metadata-only request and returns the status code. Any
// status is a valid answer; only transport failures are errors.
func (c *HTTPClient) Head(ctx context.Context, url string) (int, error) {
	resp, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	return resp.StatusCode, nil
}

// DownloadFile downloads a URL to destPath. The body streams into a
// ".part" file beside the destination which is renamed only after a
// complete write and sync, so a partial download is never visible at
// the final path.
func (c *HTTPClient) DownloadFile(ctx context.Context, url, destPath string) error {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &domain.HTTPError{Status: resp.StatusCode}
	}

	tmp := destPath + ".part"

	// #nosec G304 -- destination comes from the archive store layout
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", domain.ErrNetwork, tmp, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)

		return fmt.Errorf("%w: writing %s: %w", domain.ErrNetwork, tmp, err)
	}

	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)

		return fmt.Errorf("%w: syncing %s: %w", domain.ErrNetwork, tmp, err)
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("%w: closing %s: %w", domain.ErrNetwork, tmp, err)
	}

	if err := os.Rename(tmp, destPath); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("%w: finalizing %s: %w", domain.ErrNetwork, destPath, err)
	}

	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %w", domain.ErrNetwork, url, err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}

	return resp, nil
}
