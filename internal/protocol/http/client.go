package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/proxy"

	"github.com/sadopc/msghist/internal/core/history"
)

// HistoriesPath is the list endpoint relative to the base URL.
const HistoriesPath = "/v1/histories"

// ProxyConfig holds proxy settings.
type ProxyConfig struct {
	URL     string // http://, https://, or socks5:// proxy URL
	NoProxy string // comma-separated list of hosts to bypass proxy
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, body)
}

// ListResult is a decoded list response plus transfer details.
type ListResult struct {
	Response  history.ListResponse
	RequestID string
	URL       string
	Duration  time.Duration
	Size      int64
}

// Client talks to the messenger history API.
type Client struct {
	baseURL   string
	timeout   time.Duration
	headers   map[string]string
	proxyConf *ProxyConfig
	tlsConfig *tls.Config
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 30 * time.Second,
		headers: map[string]string{},
	}
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// SetTimeout sets the default client timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// SetHeader adds a header sent with every request.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetProxy configures proxy settings for the client.
func (c *Client) SetProxy(proxyURL, noProxy string) {
	if proxyURL == "" {
		c.proxyConf = nil
		return
	}
	c.proxyConf = &ProxyConfig{URL: proxyURL, NoProxy: noProxy}
}

// SetTLSConfig sets the TLS configuration for mTLS and certificate management.
func (c *Client) SetTLSConfig(cfg *tls.Config) {
	c.tlsConfig = cfg
}

// ListURL returns the full list URL for a query.
func (c *Client) ListURL(q history.Query) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(c.baseURL + HistoriesPath)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	u.RawQuery = q.Params().Encode()
	return u.String(), nil
}

// ListHistories fetches one page of history records.
func (c *Client) ListHistories(ctx context.Context, q history.Query) (*ListResult, error) {
	target, err := c.ListURL(q)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	transport, err := c.buildTransport()
	if err != nil {
		return nil, fmt.Errorf("configuring transport: %w", err)
	}
	client := &http.Client{
		Timeout:   c.timeout,
		Transport: transport,
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	var out history.ListResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &ListResult{
		Response:  out,
		RequestID: requestID,
		URL:       target,
		Duration:  duration,
		Size:      int64(len(body)),
	}, nil
}

// buildTransport creates an http.Transport configured with proxy and TLS settings.
func (c *Client) buildTransport() (http.RoundTripper, error) {
	transport := &http.Transport{
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if c.tlsConfig != nil {
		transport.TLSClientConfig = c.tlsConfig
	}

	if c.proxyConf == nil {
		transport.Proxy = http.ProxyFromEnvironment
		return transport, nil
	}

	parsed, err := url.Parse(c.proxyConf.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy URL: %w", err)
	}

	switch parsed.Scheme {
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if parsed.User != nil {
			password, _ := parsed.User.Password()
			auth = &proxy.Auth{
				User:     parsed.User.Username(),
				Password: password,
			}
		}
		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("creating SOCKS5 dialer: %w", err)
		}
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		}
	case "http", "https":
		if c.proxyConf.NoProxy != "" {
			noProxyHosts := parseNoProxy(c.proxyConf.NoProxy)
			transport.Proxy = func(r *http.Request) (*url.URL, error) {
				if shouldBypassProxy(r.URL.Hostname(), noProxyHosts) {
					return nil, nil
				}
				return parsed, nil
			}
		} else {
			transport.Proxy = http.ProxyURL(parsed)
		}
	default:
		return nil, fmt.Errorf("unsupported proxy scheme: %s", parsed.Scheme)
	}

	return transport, nil
}

// parseNoProxy splits a comma-separated no-proxy string into trimmed host entries.
func parseNoProxy(noProxy string) []string {
	parts := strings.Split(noProxy, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			hosts = append(hosts, strings.ToLower(p))
		}
	}
	return hosts
}

// shouldBypassProxy checks whether a host should bypass the proxy.
func shouldBypassProxy(host string, noProxyHosts []string) bool {
	host = strings.ToLower(host)
	for _, h := range noProxyHosts {
		if h == host {
			return true
		}
		// .example.com matches any subdomain
		if strings.HasPrefix(h, ".") && strings.HasSuffix(host, h) {
			return true
		}
	}
	return false
}
