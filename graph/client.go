// Package graph provides the client for the remote SPARQL endpoint: update
// execution for publishing statement sets and pass-through query execution.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/slop-at/slop/statement"
)

// maxResponseSize bounds response bodies read from the endpoint.
const maxResponseSize = 8 << 20

// SPARQL protocol media types.
const (
	contentTypeUpdate = "application/sparql-update"
	contentTypeQuery  = "application/sparql-query"
	acceptResults     = "application/sparql-results+json"
)

// Client talks the SPARQL 1.1 protocol to a single remote endpoint. It
// holds no persistent state; the remote store is the system of record for
// published statements.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewClient creates a graph client with a bounded request timeout. Calls
// never hang: a request past the timeout surfaces as a retryable
// TransportError.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		logger:   logger,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: timeout,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// Publish sends the statement set as an INSERT DATA update. Safe to call
// twice with the same set: inserting an already-present triple is a no-op
// on the graph store.
func (c *Client) Publish(ctx context.Context, set *statement.Set) error {
	update := set.InsertData()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(update))
	if err != nil {
		return fmt.Errorf("create update request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeUpdate)

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.logger.Debug("Published statement set", slog.Int("triples", set.Len()))
		return nil
	case resp.StatusCode >= 500:
		return &TransportError{err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	default:
		return &RejectedError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}

// Binding is one variable binding in a query solution.
type Binding struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ResultSet holds SPARQL SELECT results in the standard JSON layout.
type ResultSet struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]Binding `json:"bindings"`
	} `json:"results"`
}

// Query executes a read query in a single bounded attempt. Failures are
// surfaced directly; retry policy for reads belongs to the caller.
func (c *Client) Query(ctx context.Context, queryText string) (*ResultSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(queryText))
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeQuery)
	req.Header.Set("Accept", acceptResults)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusBadRequest:
		return nil, &MalformedQueryError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	case resp.StatusCode >= 500:
		return nil, &TransportError{err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	default:
		return nil, &RejectedError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var results ResultSet
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode query results: %w", err)
	}
	return &results, nil
}
