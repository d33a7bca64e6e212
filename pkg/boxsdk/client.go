package boxsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client is a typed HTTP client for the leftbox API. It is what the web and
// mobile frontends build against, and what the end-to-end tests drive.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client (timeouts, transports,
// httptest clients in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an API client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password string) (User, error) {
	var user User
	err := c.doJSON(ctx, http.MethodPost, "/register", "", CredentialsRequest{Email: email, Password: password}, &user)
	return user, err
}

// Login exchanges credentials for a user record and a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", "", CredentialsRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the given session token for the user.
func (c *Client) Logout(ctx context.Context, userID, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/"+userID+"/logout", token, nil, nil)
}

// CheckSession verifies credentials without minting a token or touching the
// access counter.
func (c *Client) CheckSession(ctx context.Context, email, password string) (User, error) {
	var user User
	err := c.doJSON(ctx, http.MethodPost, "/sessions", "", CredentialsRequest{Email: email, Password: password}, &user)
	return user, err
}

// ListUsers returns every registered user, password field excluded.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := c.doJSON(ctx, http.MethodGet, "/users", "", nil, &users)
	return users, err
}

// CreateBox creates a shareable container.
func (c *Client) CreateBox(ctx context.Context, name string) (Box, error) {
	var box Box
	err := c.doJSON(ctx, http.MethodPost, "/boxes", "", CreateBoxRequest{Name: name}, &box)
	return box, err
}

// GetBox fetches a box and its files, newest first.
func (c *Client) GetBox(ctx context.Context, id string) (*BoxResponse, error) {
	var out BoxResponse
	if err := c.doJSON(ctx, http.MethodGet, "/boxes/"+id, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadFile uploads content into a box as a multipart form.
func (c *Client) UploadFile(ctx context.Context, boxID, filename string, content io.Reader) (File, error) {
	var file File

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return file, fmt.Errorf("boxsdk: build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return file, fmt.Errorf("boxsdk: copy upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return file, fmt.Errorf("boxsdk: finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/boxes/"+boxID+"/files", &body)
	if err != nil {
		return file, fmt.Errorf("boxsdk: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return file, fmt.Errorf("boxsdk: upload file: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return file, err
	}
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return file, fmt.Errorf("boxsdk: decode response: %w", err)
	}
	return file, nil
}

// doJSON issues a JSON request and decodes a JSON response into out (when
// out is non-nil). Failing statuses decode into *APIError.
func (c *Client) doJSON(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("boxsdk: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("boxsdk: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("boxsdk: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("boxsdk: decode response: %w", err)
	}
	return nil
}

// checkResponse turns non-2xx responses into *APIError values.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = ErrorCodeServerError
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
