package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/promptflow/types"
)

// ClientConfig configures the HTTP prompt-store client.
type ClientConfig struct {
	// BaseURL of the prompt store, e.g. "https://prompts.example.com".
	BaseURL string
	// APIKey sent as a bearer token. Empty disables the header.
	APIKey string
	// Timeout per fetch request.
	Timeout time.Duration
}

// Client fetches prompt definitions over HTTP. It implements Fetcher.
type Client struct {
	cfg    ClientConfig
	client *http.Client
	logger *zap.Logger
}

// NewClient creates an HTTP prompt-store client.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// promptResponse is the store's wire format. Prompt holds either a raw
// string (text prompts) or a message array (chat prompts); Type
// disambiguates, with a structural fallback for older store versions that
// omit it.
type promptResponse struct {
	Name    string          `json:"name"`
	Version int             `json:"version"`
	Labels  []string        `json:"labels,omitempty"`
	Dialect string          `json:"dialect,omitempty"`
	Type    string          `json:"type,omitempty"`
	Prompt  json.RawMessage `json:"prompt"`
	Config  map[string]any  `json:"config,omitempty"`
}

// Fetch retrieves one prompt definition from the store.
func (c *Client) Fetch(ctx context.Context, name string, opts FetchOptions) (*Record, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/api/v1/prompts/" + url.PathEscape(name)

	query := url.Values{}
	if opts.Version > 0 {
		query.Set("version", strconv.Itoa(opts.Version))
	} else if opts.Label != "" {
		query.Set("label", opts.Label)
	}
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build prompt fetch request: %w", err)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("prompt fetch failed",
			zap.String("prompt", name),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, &Error{
			Code:      ErrFetchFailed,
			Message:   fmt.Sprintf("fetch prompt %q: %v", name, err),
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Code:      ErrFetchFailed,
			Message:   fmt.Sprintf("read prompt %q response: %v", name, err),
			Retryable: true,
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &Error{
			Code:       ErrNotFound,
			Message:    fmt.Sprintf("prompt %q not found", name),
			HTTPStatus: resp.StatusCode,
		}
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("prompt store returned error status",
			zap.String("prompt", name),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode))
		return nil, &Error{
			Code:       ErrFetchFailed,
			Message:    fmt.Sprintf("fetch prompt %q: status %d", name, resp.StatusCode),
			HTTPStatus: resp.StatusCode,
			Retryable:  resp.StatusCode >= http.StatusInternalServerError,
		}
	}

	var wire promptResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &Error{
			Code:       ErrInvalidReply,
			Message:    fmt.Sprintf("decode prompt %q response: %v", name, err),
			HTTPStatus: resp.StatusCode,
		}
	}
	record, err := wire.toRecord()
	if err != nil {
		return nil, &Error{
			Code:       ErrInvalidReply,
			Message:    fmt.Sprintf("decode prompt %q response: %v", name, err),
			HTTPStatus: resp.StatusCode,
		}
	}

	c.logger.Debug("prompt fetched",
		zap.String("prompt", name),
		zap.Int("version", record.Version),
		zap.String("request_id", requestID))
	return record, nil
}

func (w *promptResponse) toRecord() (*Record, error) {
	record := &Record{
		Name:    w.Name,
		Version: w.Version,
		Labels:  w.Labels,
		Dialect: types.Dialect(w.Dialect),
		Config:  w.Config,
	}

	switch w.Type {
	case "chat":
		var messages []types.PromptMessage
		if err := json.Unmarshal(w.Prompt, &messages); err != nil {
			return nil, fmt.Errorf("chat prompt body: %w", err)
		}
		record.Template = types.NewChatTemplate(messages)
	case "text":
		var content string
		if err := json.Unmarshal(w.Prompt, &content); err != nil {
			return nil, fmt.Errorf("text prompt body: %w", err)
		}
		record.Template = types.NewTextTemplate(content)
	default:
		// Older stores omit the type; fall back on the JSON shape.
		var content string
		if err := json.Unmarshal(w.Prompt, &content); err == nil {
			record.Template = types.NewTextTemplate(content)
			break
		}
		var messages []types.PromptMessage
		if err := json.Unmarshal(w.Prompt, &messages); err != nil {
			return nil, fmt.Errorf("prompt body is neither string nor message list: %w", err)
		}
		record.Template = types.NewChatTemplate(messages)
	}
	return record, nil
}
