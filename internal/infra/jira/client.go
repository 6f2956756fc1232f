// Package jira implements domain.IssueTracker against the JIRA REST API v2.
package jira

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/google/go-querystring/query"
	"github.com/tidwall/gjson"

	"github.com/runoshun/git-jira/internal/domain"
)

// searchPath is appended to the base URL's path.
const searchPath = "/rest/api/2/search"

// maxErrorBody caps how much of a failed response is read for diagnostics.
const maxErrorBody = 64 << 10

// searchParams are the query parameters of the search request.
type searchParams struct {
	JQL    string `url:"jql"`
	Fields string `url:"fields"`
}

// StatusError is returned when the tracker answers with a non-2xx status.
type StatusError struct {
	Messages   []string // errorMessages from the response body, if any
	StatusCode int
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: HTTP %d %s", domain.ErrTrackerRequest, e.StatusCode, http.StatusText(e.StatusCode))
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}
	return msg
}

// Is reports whether target is domain.ErrTrackerRequest.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrTrackerRequest
}

// Options configures a Client.
type Options struct {
	HTTPClient *http.Client  // nil = a new client
	Logger     domain.Logger // nil = no logging
	Timeout    time.Duration // 0 = no timeout
}

// Client searches issues on a JIRA server.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     domain.Logger
	credential domain.Credential
}

// Ensure Client implements domain.IssueTracker.
var _ domain.IssueTracker = (*Client)(nil)

// NewClient creates a client for the resolved configuration.
func NewClient(cfg *domain.Config, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if opts.Timeout > 0 {
		clone := *httpClient
		clone.Timeout = opts.Timeout
		httpClient = &clone
	}
	logger := opts.Logger
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		credential: cfg.Credential,
		httpClient: httpClient,
		logger:     logger,
	}
}

// SearchURL returns the search endpoint for the base URL.
// The endpoint path is appended to any path the base URL already has.
func (c *Client) SearchURL() string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + searchPath
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// Summaries runs one search for keys and returns key -> summary.
func (c *Client) Summaries(ctx context.Context, keys []domain.IssueKey) (map[string]string, error) {
	params, err := query.Values(searchParams{
		JQL:    domain.BuildJQL(keys),
		Fields: "summary",
	})
	if err != nil {
		return nil, fmt.Errorf("encode search parameters: %w", err)
	}

	b := requests.
		URL(c.SearchURL()).
		Client(c.httpClient).
		BasicAuth(c.credential.Username, c.credential.PasswordOrEmpty()).
		Accept("application/json").
		AddValidator(checkStatus)
	for key, values := range params {
		b.Param(key, values...)
	}
	c.logger.Debug("jira", "URL: "+c.SearchURL()+"?"+params.Encode())

	var body bytes.Buffer
	if err := b.ToBytesBuffer(&body).Fetch(ctx); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, statusErr
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTrackerRequest, err)
	}
	c.logger.Debug("jira", "response JSON:\n"+gjson.GetBytes(body.Bytes(), "@pretty").Raw)

	return ParseSearchResponse(body.Bytes())
}

// checkStatus rejects non-2xx responses, keeping the tracker's error messages.
func checkStatus(res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	statusErr := &StatusError{StatusCode: res.StatusCode}
	for _, m := range gjson.GetBytes(data, "errorMessages").Array() {
		if m.Type == gjson.String {
			statusErr.Messages = append(statusErr.Messages, m.Str)
		}
	}
	return statusErr
}

// ParseSearchResponse extracts key -> summary from a search response body.
// The body must be an object with an "issues" array whose elements carry a
// string "key" and a string "fields.summary".
func ParseSearchResponse(data []byte) (map[string]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: body is not valid JSON", domain.ErrUnexpectedResponse)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: body is not a JSON object", domain.ErrUnexpectedResponse)
	}
	issues := root.Get("issues")
	if !issues.IsArray() {
		return nil, fmt.Errorf("%w: missing \"issues\" array", domain.ErrUnexpectedResponse)
	}

	summaries := make(map[string]string)
	for i, issue := range issues.Array() {
		key := issue.Get("key")
		if key.Type != gjson.String {
			return nil, fmt.Errorf("%w: issues[%d].key is not a string", domain.ErrUnexpectedResponse, i)
		}
		summary := issue.Get("fields.summary")
		if summary.Type != gjson.String {
			return nil, fmt.Errorf("%w: issues[%d].fields.summary is not a string", domain.ErrUnexpectedResponse, i)
		}
		summaries[key.Str] = summary.Str
	}
	return summaries, nil
}
