package gist

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// keysFile is the gist file acting as the key database.
const keysFile = "keys.json"

// Client exposes the key-issuing operation backed by the gist store.
type Client interface {
	IssueKey(ctx context.Context, hours int, note string) (string, error)
}

// HTTPClient implements Client against the GitHub Gist API. The gist holds a
// JSON array of issued keys; issuing appends one entry and writes the file
// back. The call is not idempotent, so callers must invoke it at most once
// per claim.
type HTTPClient struct {
	baseURL    *url.URL
	token      string
	gistID     string
	httpClient *http.Client
	logger     *slog.Logger
}

// keyRecord mirrors one entry of the keys.json array.
type keyRecord struct {
	Key         string `json:"key"`
	Expiry      string `json:"expiry"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

type gistFile struct {
	Content string `json:"content"`
}

type gistPayload struct {
	Files map[string]gistFile `json:"files"`
}

// NewHTTPClient creates a gist client with default timeout.
func NewHTTPClient(baseURL, token, gistID string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gist api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gist api url must be absolute")
	}
	if token == "" || gistID == "" {
		return nil, fmt.Errorf("gist token and id must be provided")
	}
	return &HTTPClient{
		baseURL: parsed,
		token:   token,
		gistID:  gistID,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// IssueKey mints a fresh activation key valid for the given number of hours
// and records it in the gist. Any failure leaves the gist untouched and is
// retryable by the caller.
func (c *HTTPClient) IssueKey(ctx context.Context, hours int, note string) (string, error) {
	keys, err := c.loadKeys(ctx)
	if err != nil {
		return "", err
	}

	key, err := generateKey()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	keys = append(keys, keyRecord{
		Key:         key,
		Expiry:      now.Add(time.Duration(hours) * time.Hour).Format("2006-01-02 15:04:05"),
		Description: note,
		CreatedAt:   now.Format("2006-01-02 15:04:05"),
	})

	if err := c.saveKeys(ctx, keys); err != nil {
		return "", err
	}
	return key, nil
}

func (c *HTTPClient) loadKeys(ctx context.Context) ([]keyRecord, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gist fetch failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("gist fetch: %s", resp.Status)
	}

	var payload gistPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode gist: %w", err)
	}

	file, ok := payload.Files[keysFile]
	if !ok || file.Content == "" {
		return []keyRecord{}, nil
	}

	var keys []keyRecord
	if err := json.Unmarshal([]byte(file.Content), &keys); err != nil {
		return nil, fmt.Errorf("decode keys file: %w", err)
	}
	return keys, nil
}

func (c *HTTPClient) saveKeys(ctx context.Context, keys []keyRecord) error {
	content, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return fmt.Errorf("encode keys file: %w", err)
	}

	body, err := json.Marshal(gistPayload{Files: map[string]gistFile{
		keysFile: {Content: string(content)},
	}})
	if err != nil {
		return fmt.Errorf("encode gist payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPatch, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("gist update failed", slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
		return fmt.Errorf("gist update: %s", resp.Status)
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/gists/", c.gistID)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	return req, nil
}

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateKey returns a 16-character activation key.
func generateKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	for i, b := range buf {
		buf[i] = keyAlphabet[int(b)%len(keyAlphabet)]
	}
	return string(buf), nil
}
