// Package api is the HTTP client for the fincoach server. It keeps the
// session token from the last successful authentication and sends it as a
// bearer credential on protected calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akolosov/fincoach/internal/common"
)

// User is the account shape returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Fact is one long-term memory entry.
type Fact struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one conversation turn.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Explanation is the structured result of an investment term lookup.
type Explanation struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Example    struct {
		Scenario       string `json:"scenario"`
		InvestedAmount string `json:"invested_amount"`
		FinalValue     string `json:"final_value"`
		Gain           string `json:"gain"`
	} `json:"example"`
	RiskLevel string   `json:"risk_level"`
	RiskColor string   `json:"risk_color"`
	Takeaways []string `json:"takeaways"`
}

// Client talks to the server API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	user    *User
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 90 * time.Second},
	}
}

// User returns the account from the last successful authentication, or nil.
func (c *Client) User() *User {
	return c.user
}

// IsLoggedIn reports whether a session token is held.
func (c *Client) IsLoggedIn() bool {
	return c.token != ""
}

// Logout drops the held session token.
func (c *Client) Logout() {
	c.token = ""
	c.user = nil
}

type sessionResponse struct {
	Auth  bool   `json:"auth"`
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Signup creates an account and stores the returned session.
func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	return c.authenticate(ctx, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": password,
	})
}

// Login authenticates with email and password and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) error {
	var resp sessionResponse
	if err := c.call(ctx, http.MethodPost, path, body, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	c.user = &resp.User
	return nil
}

// Converse sends one chat turn and returns the assistant's reply.
func (c *Client) Converse(ctx context.Context, text string) (string, error) {
	var resp struct {
		Reply string `json:"reply"`
	}
	err := c.call(ctx, http.MethodPost, "/api/chat/converse", map[string]string{"message": text}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Reply, nil
}

// History returns the stored transcript, oldest first.
func (c *Client) History(ctx context.Context) ([]Message, error) {
	var msgs []Message
	if err := c.call(ctx, http.MethodGet, "/api/chat", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ClearHistory wipes the transcript.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/api/chat", nil, nil)
}

// Memory returns the stored facts, newest first.
func (c *Client) Memory(ctx context.Context) ([]Fact, error) {
	var facts []Fact
	if err := c.call(ctx, http.MethodGet, "/api/memory", nil, &facts); err != nil {
		return nil, err
	}
	return facts, nil
}

// Forget deletes a single fact by id.
func (c *Client) Forget(ctx context.Context, factID string) error {
	return c.call(ctx, http.MethodDelete, "/api/memory/"+factID, nil, nil)
}

// ClearMemory wipes all facts.
func (c *Client) ClearMemory(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/api/memory", nil, nil)
}

// Explain asks the server to explain an investment term.
func (c *Client) Explain(ctx context.Context, term string) (*Explanation, error) {
	var resp Explanation
	if err := c.call(ctx, http.MethodPost, "/api/advisor/explain", map[string]string{"term": term}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
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

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	msg := payload.Error
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, msg)
	default:
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
	}
}
