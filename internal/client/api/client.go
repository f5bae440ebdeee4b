// Package api is the HTTP JSON client for the task server. Every method maps
// to one endpoint and returns either decoded payloads or an *APIError built
// from the server's {error: msg} body.
package api

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
)

type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	MemberSince string    `json:"memberSince"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedDate time.Time `json:"createdDate"`
}

// APIError is a non-2xx response from the server. Message is the server's
// error body when it had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the server, meaning the
// stored session is missing, expired, or revoked by a key change.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs the bearer token sent with subsequent requests. An empty
// token reverts the client to anonymous.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(data, &errBody)
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// Signup registers a new account and returns the profile plus a session token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*User, string, error) {
	var resp struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": password,
	}, &resp)
	if err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

// Login exchanges credentials for the profile plus a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, string, error) {
	var resp struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &resp)
	if err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

// UpdateProfile changes name and/or email. Nil fields are left untouched.
func (c *Client) UpdateProfile(ctx context.Context, name, email *string) (*User, error) {
	body := map[string]any{}
	if name != nil {
		body["name"] = *name
	}
	if email != nil {
		body["email"] = *email
	}

	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", body, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ListTasks returns the caller's tasks, newest first.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, title, description string) (*Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPost, "/api/tasks", map[string]string{
		"title": title, "description": description,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id, title, description string) (*Task, error) {
	var resp struct {
		Task Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, map[string]string{
		"title": title, "description": description,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// Ping checks that the server answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}
