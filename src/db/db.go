package db

import (
	"bytes"
	"context"
	"encoding/json"
	"entremesa/src/config"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const requestTimeout = 10 * time.Second

// Client talks to the hosted store through its auto-generated REST API.
// Calls are human-paced, so there is no retry or backoff: a non-2xx answer
// comes back as a permanent *UpstreamError, a timeout as a transient one.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var client *Client

func GetClient() *Client {
	if client != nil {
		return client
	}
	c := NewClient(config.SupabaseURL(), config.SupabaseKey())
	client = c
	return c
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		log.Println("[store] SUPABASE_URL is not set")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// SetClient replaces the client instance. Test seam.
func SetClient(c *Client) *Client {
	client = c
	return client
}

type UpstreamError struct {
	Status    int
	Body      string
	Transient bool
}

func (e *UpstreamError) Error() string {
	if e.Transient {
		return fmt.Sprintf("store request timed out: %s", e.Body)
	}
	return fmt.Sprintf("store responded with status %d: %s", e.Status, e.Body)
}

// IsTransient reports whether err is a timeout-class failure worth retrying
// on the next poll, as opposed to an application error.
func IsTransient(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Transient
}

// transportErr classifies a round-trip failure: timeouts become transient
// *UpstreamError, everything else passes through.
func transportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &UpstreamError{Transient: true, Body: err.Error()}
	}
	var nerr interface{ Timeout() bool }
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &UpstreamError{Transient: true, Body: err.Error()}
	}
	return err
}

// Filters is an exact-match conjunction: a plain string value renders as
// col=eq.value, always. Range and set conditions are expressed with Gte and
// In, never by embedding operator syntax in the value, so a user-supplied
// string (QR token, email, bearer token) can never smuggle an operator into
// the query.
type Filters map[string]any

// Cond is a non-equality condition on a single column. Only internal callers
// can construct one.
type Cond struct {
	op  string
	arg string
}

func Gte(v string) Cond {
	return Cond{op: "gte", arg: v}
}

func In(vals ...string) Cond {
	return Cond{op: "in", arg: "(" + strings.Join(vals, ",") + ")"}
}

func (f Filters) apply(q url.Values) {
	for col, val := range f {
		switch v := val.(type) {
		case Cond:
			q.Set(col, v.op+"."+v.arg)
		default:
			q.Set(col, "eq."+fmt.Sprint(v))
		}
	}
}

func (c *Client) tableURL(table string, q url.Values) string {
	u := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any, prefer string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, transportErr(err)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &UpstreamError{Status: res.StatusCode, Body: string(resBody)}
	}
	return resBody, nil
}

// Select returns the raw JSON array of rows matching the filters.
func (c *Client) Select(ctx context.Context, table, columns string, filters Filters) ([]byte, error) {
	q := url.Values{}
	if columns != "" && columns != "*" {
		q.Set("select", columns)
	}
	filters.apply(q)
	return c.do(ctx, http.MethodGet, c.tableURL(table, q), nil, "")
}

// Insert posts one row or a slice of rows. The store only returns the created
// rows when returnRepresentation is set; the default trades the response body
// for bandwidth.
func (c *Client) Insert(ctx context.Context, table string, data any, returnRepresentation bool) ([]byte, error) {
	prefer := "return=minimal"
	if returnRepresentation {
		prefer = "return=representation"
	}
	return c.do(ctx, http.MethodPost, c.tableURL(table, url.Values{}), data, prefer)
}

func (c *Client) Update(ctx context.Context, table, idColumn string, id uint, patch any) error {
	q := url.Values{}
	Filters{idColumn: strconv.FormatUint(uint64(id), 10)}.apply(q)
	_, err := c.do(ctx, http.MethodPatch, c.tableURL(table, q), patch, "return=minimal")
	return err
}

// UpdateWhere patches every row matching the filters and returns the patched
// rows. An empty array means nothing matched, which is how callers detect a
// lost compare-and-swap on a status column.
func (c *Client) UpdateWhere(ctx context.Context, table string, filters Filters, patch any) ([]byte, error) {
	q := url.Values{}
	filters.apply(q)
	return c.do(ctx, http.MethodPatch, c.tableURL(table, q), patch, "return=representation")
}

func (c *Client) Delete(ctx context.Context, table, idColumn string, id uint) error {
	q := url.Values{}
	Filters{idColumn: strconv.FormatUint(uint64(id), 10)}.apply(q)
	_, err := c.do(ctx, http.MethodDelete, c.tableURL(table, q), nil, "")
	return err
}

func (c *Client) DeleteWhere(ctx context.Context, table string, filters Filters) error {
	q := url.Values{}
	filters.apply(q)
	_, err := c.do(ctx, http.MethodDelete, c.tableURL(table, q), nil, "")
	return err
}
