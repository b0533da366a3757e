package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the hosted MathPix API.
	DefaultBaseURL = "https://api.mathpix.com"
	// DefaultTimeout bounds a single page recognition call.
	DefaultTimeout = 60 * time.Second
)

// ErrNoProvider means no credentials were configured, so no call was made.
var ErrNoProvider = errors.New("ocr provider not configured")

// APIError is returned when MathPix answers with a non-200 status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mathpix: status %d: %s", e.StatusCode, e.Body)
}

// Credentials identify the MathPix application.
type Credentials struct {
	AppID  string
	AppKey string
}

// Configured reports whether both values are set.
func (c Credentials) Configured() bool {
	return c.AppID != "" && c.AppKey != ""
}

// Client calls the MathPix v3/text endpoint.
type Client struct {
	Credentials Credentials
	BaseURL     string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// NewClient returns a Client with the default endpoint and timeout.
func NewClient(creds Credentials) *Client {
	return &Client{
		Credentials: creds,
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
	}
}

type textRequest struct {
	Src         string      `json:"src"`
	Formats     []string    `json:"formats"`
	DataOptions dataOptions `json:"data_options"`
}

type dataOptions struct {
	IncludeLatex     bool `json:"include_latex"`
	IncludeAsciiMath bool `json:"include_asciimath"`
}

type textResponse struct {
	Text string `json:"text"`
}

// Recognize sends the PNG at imagePath to MathPix and returns the plain
// text. Each call is attempted once.
func (c *Client) Recognize(ctx context.Context, imagePath string) (string, error) {
	if !c.Credentials.Configured() {
		return "", ErrNoProvider
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	payload, err := json.Marshal(textRequest{
		Src:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
		Formats: []string{"text"},
		DataOptions: dataOptions{
			IncludeLatex:     true,
			IncludeAsciiMath: true,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("app_id", c.Credentials.AppID)
	req.Header.Set("app_key", c.Credentials.AppKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("mathpix request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out textResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Text, nil
}

func (c *Client) endpoint() string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/v3/text"
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
