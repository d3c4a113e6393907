// Package identity 封装对外部 OAuth/会话服务的调用。
// 认证完全委托给该服务：本应用只持有它签发的会话令牌，
// 并在每个请求上用令牌换取用户身份。
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrUnauthorized 表示令牌缺失、过期或已被撤销
	ErrUnauthorized = errors.New("identity: unauthorized")
)

// User 是外部身份服务返回的用户档案
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Config 指定身份服务的访问参数
type Config struct {
	APIURL string
	APIKey string
}

// Client 按固定契约访问外部身份服务
type Client struct {
	apiURL string
	apiKey string
	http   *http.Client
}

// NewClient 构造 Client，默认 10 秒超时
func NewClient(cfg Config) *Client {
	return &Client{
		apiURL: strings.TrimRight(cfg.APIURL, "/"),
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

// WithHTTPClient 允许测试注入自定义 http.Client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.http = hc
	}
	return c
}

// OAuthRedirectURL 获取指定提供方的 OAuth 授权跳转地址
func (c *Client) OAuthRedirectURL(ctx context.Context, provider string) (string, error) {
	endpoint := fmt.Sprintf("%s/oauth/%s/redirect_url", c.apiURL, url.PathEscape(provider))

	var payload struct {
		RedirectURL string `json:"redirect_url"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return "", err
	}
	if payload.RedirectURL == "" {
		return "", errors.New("identity: empty redirect url")
	}
	return payload.RedirectURL, nil
}

// ExchangeCode 用授权码换取会话令牌
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", errors.New("identity: authorization code is required")
	}

	body := map[string]string{"code": code}
	var payload struct {
		SessionToken string `json:"session_token"`
	}
	if err := c.do(ctx, http.MethodPost, c.apiURL+"/sessions", body, &payload); err != nil {
		return "", err
	}
	if payload.SessionToken == "" {
		return "", errors.New("identity: empty session token")
	}
	return payload.SessionToken, nil
}

// FetchUser 用会话令牌解析当前用户，令牌无效时返回 ErrUnauthorized
func (c *Client) FetchUser(ctx context.Context, sessionToken string) (*User, error) {
	if strings.TrimSpace(sessionToken) == "" {
		return nil, ErrUnauthorized
	}

	req, err := c.newRequest(ctx, http.MethodGet, c.apiURL+"/users/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+sessionToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity: fetch user: unexpected status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("identity: decode user: %w", err)
	}
	if user.ID == "" {
		return nil, ErrUnauthorized
	}
	return &user, nil
}

// DeleteSession 注销远端会话；令牌已失效时视为成功
func (c *Client) DeleteSession(ctx context.Context, sessionToken string) error {
	if strings.TrimSpace(sessionToken) == "" {
		return nil
	}

	req, err := c.newRequest(ctx, http.MethodDelete, c.apiURL+"/sessions/current", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+sessionToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity: delete session: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusUnauthorized, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("identity: delete session: unexpected status %d", resp.StatusCode)
	}
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("identity: encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("identity: %s %s: unexpected status %d", method, endpoint, resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("identity: decode response: %w", err)
	}
	return nil
}
