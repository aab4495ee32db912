// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"net/url"
	"os"

	"golang.org/x/net/http/httpproxy"
)

// HasProxy checks if any proxy is configured.
// Checks lowercase first (takes precedence per Unix convention).
func HasProxy() bool {
	proxyVars := []string{"http_proxy", "https_proxy", "HTTP_PROXY", "HTTPS_PROXY"}
	for _, v := range proxyVars {
		if os.Getenv(v) != "" {
			return true
		}
	}

	return false
}

// GetProxyForURL returns the proxy URL to use for the given target URL,
// or empty when the request goes direct. Respects NO_PROXY settings.
// Unlike http.ProxyFromEnvironment this reads the environment on every
// call, so runtime changes are observed.
func GetProxyForURL(targetURL string) string {
	target, err := url.Parse(targetURL)
	if err != nil {
		return ""
	}

	proxyURL, err := httpproxy.FromEnvironment().ProxyFunc()(target)
	if err != nil || proxyURL == nil {
		return ""
	}

	return proxyURL.String()
}
