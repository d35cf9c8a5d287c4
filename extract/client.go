package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	vocab "github.com/slop-at/slop/vocabulary/slop"
)

// maxResponseSize bounds the extraction response body.
const maxResponseSize = 4 << 20

// Client is an Extractor backed by a remote NER inference service. The
// service accepts raw text plus the entity schema and returns typed spans
// with character offsets and confidence scores.
type Client struct {
	endpoint  string
	threshold float64
	client    *http.Client
}

// NewClient creates an extraction client with a bounded request timeout.
func NewClient(endpoint string, threshold float64, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint:  endpoint,
		threshold: threshold,
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

// extractRequest is the wire format sent to the inference endpoint.
type extractRequest struct {
	Text      string   `json:"text"`
	Labels    []string `json:"labels"`
	Threshold float64  `json:"threshold"`
}

// extractResponse is the wire format returned by the inference endpoint.
// Spans carry character offsets; line numbers are derived locally.
type extractResponse struct {
	Entities []struct {
		Text  string  `json:"text"`
		Label string  `json:"label"`
		Start int     `json:"start"`
		End   int     `json:"end"`
		Score float64 `json:"score"`
	} `json:"entities"`
}

// Extract sends text to the inference service and maps the result into the
// know.dev ontology. Any transport or decoding failure is reported as an
// UnavailableError so the caller can degrade instead of failing the publish.
func (c *Client) Extract(ctx context.Context, text string) ([]Entity, error) {
	labels := make([]string, 0, len(vocab.EntityTypes()))
	for _, et := range vocab.EntityTypes() {
		labels = append(labels, string(et))
	}

	body, err := json.Marshal(extractRequest{
		Text:      text,
		Labels:    labels,
		Threshold: c.threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewUnavailableError(fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, NewUnavailableError(fmt.Errorf("read response: %w", err))
	}

	var decoded extractResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, NewUnavailableError(fmt.Errorf("decode response: %w", err))
	}

	entities := make([]Entity, 0, len(decoded.Entities))
	for _, raw := range decoded.Entities {
		entityType := vocab.EntityType(raw.Label)
		if !entityType.Valid() {
			// Labels outside the ontology are dropped, not fatal.
			continue
		}
		if raw.Score < c.threshold {
			continue
		}
		entities = append(entities, Entity{
			Text:       raw.Text,
			Type:       entityType,
			StartLine:  LineOf(text, raw.Start),
			EndLine:    LineOf(text, raw.End),
			Confidence: raw.Score,
		})
	}
	return entities, nil
}
