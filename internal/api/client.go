// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ppanel/ppadmin/internal/logger"
)

// Connection is an authenticated PPanel admin API session.
type Connection interface {
	Get(ctx context.Context, path string, query map[string]string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, body, out any) error

	ConnectionOK() bool
	ActiveProfile() string
	Endpoint() string
	ProfileNames() []string
	SwitchProfile(ctx context.Context, name string) error
}

// ClientConfig tunes the API client.
type ClientConfig struct {
	Profile  string
	Endpoint string
	Timeout  time.Duration
	Debug    bool
}

// Envelope is the PPanel response wrapper.
type Envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

const (
	successCode = http.StatusOK

	// httpRetries applies to regular calls. Login runs on its own backoff.
	httpRetries = 3
)

// APIClient talks to the PPanel admin API.
type APIClient struct {
	config   *ClientConfig
	profiles *Profiles
	http     *resty.Client
	auth     *resty.Client
	profile  *Profile
	token    string
	connOK   bool
	log      logger.Logger
	mx       sync.RWMutex
}

// NewAPIClient returns a client bound to the configured profile. It does not
// log in.
func NewAPIClient(profiles *Profiles, cfg *ClientConfig) (*APIClient, error) {
	if profiles == nil {
		return nil, errors.New("profiles cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Profile == "" {
		cfg.Profile = profiles.Active()
	}

	c := APIClient{
		config:   cfg,
		profiles: profiles,
		log:      logger.GetDefault().With("component", "api"),
	}
	if err := c.bind(cfg.Profile); err != nil {
		return nil, err
	}

	return &c, nil
}

// InitConnection builds a client and logs in when the profile has no token.
func InitConnection(ctx context.Context, profiles *Profiles, cfg *ClientConfig) (*APIClient, error) {
	c, err := NewAPIClient(profiles, cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *APIClient) bind(name string) error {
	p, err := c.profiles.Get(name)
	if err != nil {
		return err
	}
	if err := c.profiles.SetActive(name); err != nil {
		return err
	}
	endpoint := p.Endpoint
	if c.config.Endpoint != "" {
		endpoint = c.config.Endpoint
	}
	timeout := p.Timeout
	if c.config.Timeout > 0 {
		timeout = c.config.Timeout
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	c.profile = p
	c.token = p.Token
	c.connOK = p.Token != ""
	base := strings.TrimRight(endpoint, "/")
	c.http = buildHTTPClient(base, timeout, c.config.Debug, httpRetries)
	c.auth = buildHTTPClient(base, timeout, c.config.Debug, 0)

	return nil
}

func buildHTTPClient(baseURL string, timeout time.Duration, debug bool, retries int) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	client.AddRetryCondition(retryCondition)
	client.SetDebug(debug)

	return client
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

// Connect logs in unless the profile already carries a token.
func (c *APIClient) Connect(ctx context.Context) error {
	c.mx.RLock()
	p, token := c.profile, c.token
	c.mx.RUnlock()

	if token != "" {
		return nil
	}
	if !p.CanLogin() {
		return fmt.Errorf("profile %q: %w", p.Name, ErrNoConnection)
	}
	token, err := c.Login(ctx, p.Email, p.Password)
	if err != nil {
		return err
	}
	c.setToken(token)

	return nil
}

func (c *APIClient) setToken(token string) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.token, c.connOK = token, token != ""
}

// ConnectionOK checks if the client holds a session token.
func (c *APIClient) ConnectionOK() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.connOK
}

// ActiveProfile returns the bound profile name.
func (c *APIClient) ActiveProfile() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.profile.Name
}

// Endpoint returns the API base url.
func (c *APIClient) Endpoint() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.http.BaseURL
}

// ProfileNames lists the known profiles.
func (c *APIClient) ProfileNames() []string {
	return c.profiles.Names()
}

// SwitchProfile rebinds the client to another profile and logs in.
func (c *APIClient) SwitchProfile(ctx context.Context, name string) error {
	c.mx.RLock()
	prev, prevToken := c.profile.Name, c.token
	c.mx.RUnlock()

	if err := c.bind(name); err != nil {
		return err
	}
	if err := c.Connect(ctx); err != nil {
		if rerr := c.bind(prev); rerr != nil {
			c.log.Error("profile rollback failed", "profile", prev, "err", rerr)
			return err
		}
		c.setToken(prevToken)
		return err
	}
	c.log.Info("switched profile", "profile", name)

	return nil
}

// Get issues a GET with query parameters and decodes the envelope data into out.
func (c *APIClient) Get(ctx context.Context, path string, query map[string]string, out any) error {
	return c.call(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *APIClient) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *APIClient) Put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE with a JSON body.
func (c *APIClient) Delete(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodDelete, path, nil, body, out)
}

// call runs a request, logging in again once when the session expired.
func (c *APIClient) call(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	err := c.do(ctx, method, path, query, body, out)
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}

	c.mx.RLock()
	p := c.profile
	c.mx.RUnlock()
	if !p.CanLogin() {
		c.setToken("")
		return err
	}
	c.log.Warn("session expired, logging in again", "profile", p.Name)
	token, lerr := c.Login(ctx, p.Email, p.Password)
	if lerr != nil {
		c.setToken("")
		return fmt.Errorf("relogin failed: %w", lerr)
	}
	c.setToken(token)

	return c.do(ctx, method, path, query, body, out)
}

func (c *APIClient) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	c.mx.RLock()
	client, token := c.http, c.token
	if path == loginPath {
		client = c.auth
	}
	c.mx.RUnlock()

	req := client.R().SetContext(ctx)
	if token != "" {
		req.SetHeader("Authorization", token)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.log.Debug("api call", "method", method, "path", path, "status", resp.StatusCode(), "took", time.Since(start))

	return decode(resp, out)
}

func decode(resp *resty.Response, out any) error {
	var env Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		if resp.IsError() {
			return &Error{Code: resp.StatusCode(), Msg: http.StatusText(resp.StatusCode())}
		}
		return fmt.Errorf("invalid response body: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return &Error{Code: http.StatusUnauthorized, Msg: env.Msg}
	}
	if env.Code != successCode {
		code := env.Code
		if code == 0 {
			code = resp.StatusCode()
		}
		return &Error{Code: code, Msg: env.Msg}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}

	return nil
}
