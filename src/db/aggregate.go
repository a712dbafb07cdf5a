package db

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Typed aggregate queries. Callers never pass raw SUM/COUNT expressions as
// column strings; these build the store's aggregate syntax themselves.

// SumWhere returns the sum of column over the rows matching the filters.
// A sum over zero rows is 0.
func (c *Client) SumWhere(ctx context.Context, table, column string, filters Filters) (float64, error) {
	q := url.Values{}
	q.Set("select", fmt.Sprintf("%s.sum()", column))
	filters.apply(q)
	body, err := c.do(ctx, http.MethodGet, c.tableURL(table, q), nil, "")
	if err != nil {
		return 0, err
	}
	return gjson.GetBytes(body, "0.sum").Float(), nil
}

// CountWhere returns the exact number of rows matching the filters, using a
// HEAD request so no row data crosses the wire.
func (c *Client) CountWhere(ctx context.Context, table string, filters Filters) (int64, error) {
	q := url.Values{}
	filters.apply(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.tableURL(table, q), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Prefer", "count=exact")

	res, err := c.http.Do(req)
	if err != nil {
		return 0, transportErr(err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return 0, &UpstreamError{Status: res.StatusCode}
	}
	// Content-Range: 0-24/3573
	cr := res.Header.Get("Content-Range")
	idx := strings.LastIndex(cr, "/")
	if idx < 0 {
		return 0, fmt.Errorf("missing Content-Range header in count response")
	}
	total := cr[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("store did not return an exact count")
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed Content-Range %q: %w", cr, err)
	}
	return n, nil
}
