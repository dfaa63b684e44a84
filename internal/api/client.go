package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"cardapio/internal/domain"
	apperrors "cardapio/internal/errors"
	"cardapio/internal/logger"
)

// RequestIDHeader is set on every outgoing request.
const RequestIDHeader = "X-Request-ID"

const maxErrorBody = 4 << 10

type Client struct {
	base string
	http *http.Client
	log  *logger.Logger
}

// New returns a client for the service rooted at base. A nil httpClient
// means http.DefaultClient.
func New(base string, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: httpClient,
		log:  log,
	}
}

// Base returns the service root without a trailing slash.
func (c *Client) Base() string { return c.base }

func (c *Client) FetchCategories(ctx context.Context, username domain.Username) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.getJSON(ctx, "/"+url.PathEscape(string(username))+"/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchRestaurant(ctx context.Context, username domain.Username) (domain.Restaurant, error) {
	var out domain.Restaurant
	if err := c.getJSON(ctx, "/"+url.PathEscape(string(username))+"/", &out); err != nil {
		return domain.Restaurant{}, err
	}
	return out, nil
}

// Login authenticates against the restaurant's client login. Only a 200 counts
// as success.
func (c *Client) Login(ctx context.Context, username domain.Username, creds domain.Credentials) (domain.Client, error) {
	var out domain.Client
	resp, err := c.do(ctx, http.MethodPost, "/"+url.PathEscape(string(username))+"/client/login", creds)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return out, statusError(resp)
	}
	if err := decodeBody(resp.Body, &out, false); err != nil {
		return domain.Client{}, err
	}
	return out, nil
}

type registerRequest struct {
	domain.Registration
	User struct {
		ID domain.RestaurantID `json:"id"`
	} `json:"user"`
}

// Register creates a client account owned by the given restaurant.
func (c *Client) Register(ctx context.Context, reg domain.Registration, restaurant domain.RestaurantID) (domain.Client, error) {
	req := registerRequest{Registration: reg}
	req.User.ID = restaurant

	var out domain.Client
	if err := c.post(ctx, "/client", req, &out); err != nil {
		return domain.Client{}, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, order domain.OrderSubmission) (domain.Order, error) {
	var out domain.Order
	if err := c.post(ctx, "/order", order, &out); err != nil {
		return domain.Order{}, err
	}
	return out, nil
}

// FetchOrders returns the client's order history. An empty body is an empty
// history.
func (c *Client) FetchOrders(ctx context.Context, clientID domain.ClientID) ([]domain.Order, error) {
	resp, err := c.do(ctx, http.MethodGet, "/client/"+strconv.FormatInt(int64(clientID), 10)+"/orders", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, statusError(resp)
	}
	var out []domain.Order
	if err := decodeBody(resp.Body, &out, true); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Order{}
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	resp, err := c.do(ctx, http.MethodPost, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	return decodeBody(resp.Body, out, false)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return statusError(resp)
	}
	return decodeBody(resp.Body, out, false)
}

// do sends the request. The caller owns the response body.
func (c *Client) do(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "encode request body")
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	ctx = c.log.WithFields(c.log.WithRequestID(ctx, requestID), map[string]any{
		"method": method,
		"path":   path,
	})
	c.log.Debug(ctx, "api request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(c.log.WithField(ctx, "error", err.Error()), "api request failed")
		return nil, apperrors.Wrap(apperrors.CodeNetwork, err, method+" "+path+": "+err.Error())
	}
	c.log.Debug(c.log.WithField(ctx, "status", resp.StatusCode), "api response")
	return resp, nil
}

func decodeBody(r io.Reader, out any, allowEmpty bool) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNetwork, err, "read response body")
	}
	if len(bytes.TrimSpace(b)) == 0 {
		if allowEmpty {
			return nil
		}
		return apperrors.New(apperrors.CodeMalformedResponse, "empty response body")
	}
	if err := json.Unmarshal(b, out); err != nil {
		return apperrors.Wrap(apperrors.CodeMalformedResponse, err, "decode response body")
	}
	return nil
}

// statusError reads the server's explanation from a non-success response:
// the "message" field of a JSON body, else the plain-text body, else the
// status text.
func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := serverMessage(b)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	if msg == "" {
		msg = resp.Status
	}
	return apperrors.New(apperrors.CodeServer, msg).WithStatus(resp.StatusCode)
}

func serverMessage(b []byte) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}
	return string(b)
}

// Compile-time assertion that Client implements domain.RestaurantAPI.
var _ domain.RestaurantAPI = (*Client)(nil)
