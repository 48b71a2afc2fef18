package http

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sadopc/msghist/internal/core/history"
)

// AsCurl returns the list request for q as a curl command line.
func (c *Client) AsCurl(q history.Query) (string, error) {
	target, err := c.ListURL(q)
	if err != nil {
		return "", err
	}

	parts := []string{"curl", "-H", shellQuote("Accept: application/json")}

	keys := make([]string, 0, len(c.headers))
	for k := range c.headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, "-H", shellQuote(fmt.Sprintf("%s: %s", k, c.headers[k])))
	}

	if c.proxyConf != nil {
		parts = append(parts, "--proxy", shellQuote(c.proxyConf.URL))
		if c.proxyConf.NoProxy != "" {
			parts = append(parts, "--noproxy", shellQuote(c.proxyConf.NoProxy))
		}
	}
	if c.tlsConfig != nil && c.tlsConfig.InsecureSkipVerify {
		parts = append(parts, "-k")
	}

	parts = append(parts, shellQuote(target))
	return strings.Join(parts, " "), nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
