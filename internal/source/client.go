// Package source implements the sitekit content source against a WPGraphQL
// endpoint. It is the only package that performs network I/O; everything
// downstream consumes the typed records it returns.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeRequestFailed  = "WP_GRAPHQL_REQUEST_FAILED"
	codeBadStatus      = "WP_GRAPHQL_BAD_STATUS"
	codeInvalidPayload = "WP_GRAPHQL_INVALID_PAYLOAD"
	codeQueryErrors    = "WP_GRAPHQL_QUERY_ERRORS"
)

// ErrEndpointRequired indicates the client was constructed without a
// GraphQL endpoint.
var ErrEndpointRequired = errors.New("source: graphql endpoint is required")

// Client is a minimal GraphQL-over-HTTP client. The pack offers no GraphQL
// client library, so this stays a thin POST+JSON wrapper.
type Client struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
}

// ClientOption customizes the client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAuthToken attaches a bearer token to every request.
func WithAuthToken(token string) ClientOption {
	return func(c *Client) {
		c.authToken = strings.TrimSpace(token)
	}
}

// NewClient constructs a client for the endpoint. A base site URL is
// accepted; "/graphql" is appended when missing.
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}
	if !strings.HasSuffix(endpoint, "/graphql") {
		endpoint = strings.TrimRight(endpoint, "/") + "/graphql"
	}

	client := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type graphqlRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// Do executes one operation and decodes the data envelope into out.
// Partial data alongside GraphQL errors is kept (WPGraphQL reports
// per-field errors for optional plugins); the call fails only when no data
// came back at all.
func (c *Client) Do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{
		OperationName: operation,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "source: encode graphql request").
			WithTextCode(codeInvalidPayload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "source: build graphql request").
			WithTextCode(codeRequestFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, fmt.Sprintf("source: %s request failed", operation)).
			WithTextCode(codeRequestFailed)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, fmt.Sprintf("source: %s read response", operation)).
			WithTextCode(codeRequestFailed)
	}

	if resp.StatusCode != http.StatusOK {
		return goerrors.Wrap(
			fmt.Errorf("status %d", resp.StatusCode),
			goerrors.CategoryExternal,
			fmt.Sprintf("source: %s returned non-200", operation),
		).WithTextCode(codeBadStatus)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, fmt.Sprintf("source: %s invalid response body", operation)).
			WithTextCode(codeInvalidPayload)
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return goerrors.Wrap(
			fmt.Errorf("graphql errors: %s", strings.Join(messages, "; ")),
			goerrors.CategoryExternal,
			fmt.Sprintf("source: %s failed", operation),
		).WithTextCode(codeQueryErrors)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, fmt.Sprintf("source: %s decode data", operation)).
			WithTextCode(codeInvalidPayload)
	}
	return nil
}
