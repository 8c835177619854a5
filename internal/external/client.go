// Package external talks to the two outbound HTTP collaborators: the imgur
// image host and the paste.gg paste host. Both are stateless
// request/response calls; a failure is surfaced to the caller as an error
// and the caller continues with what it has.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/ratelimit"
)

const (
	imgurUploadURL  = "https://api.imgur.com/3/image"
	pasteUploadURL  = "https://api.paste.gg/v1/pastes"
	pasteViewPrefix = "https://paste.gg/"
)

// Client performs uploads to the image and paste hosts.
type Client struct {
	httpClient    *http.Client
	limiter       ratelimit.Limiter
	imgurClientID string
	imgurURL      string
	pasteURL      string
}

// NewClient creates a new upload client. imgurClientID may be empty, in
// which case image uploads fail and suggestions are posted without images.
func NewClient(imgurClientID string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		limiter:       ratelimit.New(5),
		imgurClientID: imgurClientID,
		imgurURL:      imgurUploadURL,
		pasteURL:      pasteUploadURL,
	}
}

type imgurRequest struct {
	Image string `json:"image"`
	Type  string `json:"type"`
}

type imgurResponse struct {
	Data struct {
		Link string `json:"link"`
	} `json:"data"`
	Success bool `json:"success"`
}

// UploadImage re-hosts the image at imageURL on imgur and returns the
// resulting link.
func (c *Client) UploadImage(ctx context.Context, imageURL string) (string, error) {
	if c.imgurClientID == "" {
		return "", fmt.Errorf("imgur client id is not configured")
	}

	body, err := json.Marshal(imgurRequest{Image: imageURL, Type: "url"})
	if err != nil {
		return "", fmt.Errorf("failed to encode imgur request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.imgurURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build imgur request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Client-ID "+c.imgurClientID)

	var resp imgurResponse
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("imgur upload failed: %w", err)
	}
	if resp.Data.Link == "" {
		return "", fmt.Errorf("imgur upload returned no link")
	}
	return resp.Data.Link, nil
}

type pasteFileContent struct {
	Format string `json:"format"`
	Value  string `json:"value"`
}

type pasteFile struct {
	Name    string           `json:"name"`
	Content pasteFileContent `json:"content"`
}

type pasteRequest struct {
	Name  string      `json:"name"`
	Files []pasteFile `json:"files"`
}

type pasteResponse struct {
	Status string `json:"status"`
	Result struct {
		ID string `json:"id"`
	} `json:"result"`
}

// UploadPaste publishes content as a text paste and returns the viewing
// URL. The host expires pastes after its own retention window (30 days).
func (c *Client) UploadPaste(ctx context.Context, name, content string) (string, error) {
	body, err := json.Marshal(pasteRequest{
		Name: name,
		Files: []pasteFile{{
			Name:    "votes.txt",
			Content: pasteFileContent{Format: "text", Value: content},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode paste request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pasteURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build paste request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp pasteResponse
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("paste upload failed: %w", err)
	}
	if resp.Result.ID == "" {
		return "", fmt.Errorf("paste upload returned no id")
	}
	return pasteViewPrefix + resp.Result.ID, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	c.limiter.Take()

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", httpResp.StatusCode, string(body))
	}
	return json.NewDecoder(httpResp.Body).Decode(out)
}
