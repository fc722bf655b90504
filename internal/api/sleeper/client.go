package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/omarshaarawi/sleeperboard/internal/config"
)

// maxRawBody bounds relayed responses; the full player directory is ~10MB.
const maxRawBody = 64 << 20

type Client struct {
	httpClient *http.Client
	baseURL    string
	Config     config.Sleeper
}

func NewClient(cfg config.Sleeper) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

func NewClientWithHTTP(cfg config.Sleeper, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		Config:     cfg,
	}
}

func (c *Client) url(endpoint string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(endpoint, "/"))
}

func (c *Client) Get(ctx context.Context, endpoint string, result interface{}) error {
	resp, err := c.do(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

// GetRaw returns the upstream body without decoding it, whatever the status.
func (c *Client) GetRaw(ctx context.Context, endpoint string) (int, []byte, error) {
	resp, err := c.do(ctx, endpoint)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRawBody))
	if err != nil {
		return 0, nil, fmt.Errorf("error reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) do(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	return resp, nil
}
