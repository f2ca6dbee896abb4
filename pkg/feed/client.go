package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unifeed/unifeed-cli/pkg/models"
)

// Client talks to the remote feed API. The session token is opaque to the
// composer; it is injected from the environment and forwarded as a bearer
// header.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     *logrus.Logger
}

// Config represents the configuration for a feed client
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *logrus.Logger
}

// NewClient creates a new feed API client
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
		config.Logger.SetOutput(io.Discard)
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: DefaultTransport(),
		},
		token:  config.Token,
		logger: config.Logger,
	}
}

// Upload is one media file part of a create-post request. If Reader also
// implements io.Closer it is closed once the part has been written (or the
// request aborted).
type Upload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// CreatePostRequest is the multipart payload for the feed-creation endpoint.
// Text is already shaped (trimmed, title folded in); hashtags carry no
// leading '#'.
type CreatePostRequest struct {
	Kind       models.Kind
	Text       string
	Visibility models.Visibility
	Hashtags   []string
	Media      []Upload
}

// CreatePostResponse is the 2xx response of the feed-creation endpoint.
type CreatePostResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at,omitempty"`
}

// User is a directory entry returned by the mention search endpoint.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
}

// CreatePost sends the composed post as a multipart request so raw file
// bytes accompany the structured fields. Non-2xx responses come back as an
// *APIError carrying the server's message when one was provided.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*CreatePostResponse, error) {
	defer closeUploads(req.Media)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, req))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/posts", pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).Debug("create post request failed")
		return nil, fmt.Errorf("failed to reach feed server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WithField("status", resp.StatusCode).Debug("create post rejected")
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var created CreatePostResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"post_id": created.ID,
		"kind":    req.Kind,
	}).Debug("post created")

	return &created, nil
}

func writeMultipart(mw *multipart.Writer, req CreatePostRequest) error {
	if err := mw.WriteField("kind", string(req.Kind)); err != nil {
		return err
	}
	if err := mw.WriteField("text", req.Text); err != nil {
		return err
	}
	if err := mw.WriteField("visibility", string(req.Visibility)); err != nil {
		return err
	}
	for _, tag := range req.Hashtags {
		if err := mw.WriteField("hashtags", tag); err != nil {
			return err
		}
	}

	for _, m := range req.Media {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="media"; filename="%s"`, escapeQuotes(m.Name)))
		if m.ContentType != "" {
			header.Set("Content-Type", m.ContentType)
		}

		part, err := mw.CreatePart(header)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, m.Reader); err != nil {
			return fmt.Errorf("failed to write media part %s: %w", m.Name, err)
		}
	}

	return mw.Close()
}

// SearchUsers queries the directory behind mention autocomplete. An empty
// query returns the server's default suggestions.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	endpoint := c.baseURL + "/api/users/search?q=" + url.QueryEscape(query)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to reach feed server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return users, nil
}

func closeUploads(media []Upload) {
	for _, m := range media {
		if closer, ok := m.Reader.(io.Closer); ok {
			closer.Close()
		}
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
