// Package api is the typed client for the BookStore REST backend. Every
// operation goes through one request path: JSON bodies, a bearer token
// on secure endpoints, and the backend's {message} error envelope with
// a generic fallback when the body carries none.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookhub/internal/session"
	"bookhub/pkg/models"
)

// ErrNotAuthenticated is returned by secure operations when the session
// holds no usable token. Callers treat it as a silent skip: no network
// traffic happened and no state should change.
var ErrNotAuthenticated = errors.New("not authenticated")

// FallbackMessage is shown when an error response has no message field.
const FallbackMessage = "Oops, something went wrong!"

// Client issues requests against one backend.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
}

// New creates a client for the backend at baseURL (including the /api
// prefix). The session may be nil for anonymous browsing.
func New(baseURL string, sess *session.Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		session: sess,
	}
}

// Session returns the session the client attaches to secure calls.
func (c *Client) Session() *session.Session { return c.session }

// canAuthorize reports whether a secure call may proceed. An expired
// token is treated the same as no token: skip without touching the
// network and let the caller re-authenticate.
func (c *Client) canAuthorize() bool {
	return c.session != nil && c.session.IsAuthenticated() && !c.session.Expired()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, secure bool, body, out any) error {
	if secure && !c.canAuthorize() {
		return ErrNotAuthenticated
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if secure {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
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
		var envelope models.ErrorResponse
		json.Unmarshal(data, &envelope)
		message := envelope.Message
		if message == "" {
			message = FallbackMessage
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}

// pageQuery builds the backend's pagination parameters. The client
// counts pages from 1; the wire counts from 0.
func pageQuery(perPageParam string, page, perPage int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page-1))
	query.Set(perPageParam, strconv.Itoa(perPage))
	return query
}
