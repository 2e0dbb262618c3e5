package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"bettrack/internal/models/request_models"
	"bettrack/internal/models/response_models"
	"bettrack/pkg/utils"
)

// ErrUnauthorized is returned when the backend rejects the stored session
// token. The client drops the token so callers can prompt for a new login.
var ErrUnauthorized = utils.ErrInvalidCredential

const recentCacheCap = 100

// Client is a thin consumer of the tracking API. It keeps the bearer token
// and a small most-recent-first cache of processed bets so callers can show
// history without a round trip.
type Client struct {
	HTTP    *http.Client
	BaseURL string

	mu     sync.RWMutex
	token  string
	recent []response_models.BetRecord
}

func New(baseURL string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 60 * time.Second},
		BaseURL: baseURL,
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SignedIn reports whether a session token is currently held.
func (c *Client) SignedIn() bool {
	return c.Token() != ""
}

// Recent returns a copy of the local cache, newest first.
func (c *Client) Recent() []response_models.BetRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]response_models.BetRecord, len(c.recent))
	copy(out, c.recent)
	return out
}

func (c *Client) remember(rec response_models.BetRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent = append([]response_models.BetRecord{rec}, c.recent...)
	if len(c.recent) > recentCacheCap {
		c.recent = c.recent[:recentCacheCap]
	}
}

// clearSession drops the token and the cached history together; stale
// entries must not outlive the sign-in they belong to.
func (c *Client) clearSession() {
	c.mu.Lock()
	c.token = ""
	c.recent = nil
	c.mu.Unlock()
}

// Login exchanges credentials for a session token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (*response_models.LoginResult, error) {
	body := request_models.LoginRequest{Email: email, Password: password}
	var result response_models.LoginResult
	if err := c.post(ctx, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

// ProcessBet uploads a screenshot for extraction. Successful results are
// added to the local cache.
func (c *Client) ProcessBet(ctx context.Context, imageData string) (*response_models.ProcessBetResult, error) {
	body := request_models.ProcessBetRequest{ImageData: imageData}
	var result response_models.ProcessBetResult
	if err := c.post(ctx, "/process-bet", body, &result); err != nil {
		return nil, err
	}
	c.remember(result.Bet)
	return &result, nil
}

func (c *Client) History(ctx context.Context, page, pageSize int) (*response_models.HistoryPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(pageSize))
	var result response_models.HistoryPage
	if err := c.get(ctx, "/history?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UserInfo(ctx context.Context) (*response_models.UserInfo, error) {
	var result response_models.UserInfo
	if err := c.get(ctx, "/user/info", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession()
		return ErrUnauthorized
	}

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Code    string          `json:"code"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	if !envelope.Success {
		if envelope.Code != "" {
			return fmt.Errorf("%s: %s", envelope.Code, envelope.Error)
		}
		return fmt.Errorf("request failed: %s", envelope.Error)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode payload from %s: %w", req.URL.Path, err)
		}
	}
	return nil
}
