package openpayments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
)

const (
	defaultRequestTimeout = 30 * time.Second
	maxResponseBodyBytes  = 1 << 20
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Error is a non-success response from an authorization or resource server.
type Error struct {
	Status int
	Method string
	URL    string
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("open payments: %s %s: status %d", e.Method, e.URL, e.Status)
}

// IsStatus reports whether err is a server response with the given status.
func IsStatus(err error, status int) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == status
}

type Config struct {
	// WalletAddressURL identifies the client wallet the request signing key
	// belongs to. Sent as the client reference in grant requests.
	WalletAddressURL string `valid:"url,required"`

	HTTPClient HTTPDoer
	Signer     Signer
}

// Client talks JSON to authorization and resource servers, signing every
// outbound request.
type Client struct {
	walletAddressURL string
	http             HTTPDoer
	signer           Signer
}

func NewClient(cfg Config) *Client {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}

	signer := cfg.Signer
	if signer == nil {
		signer = NopSigner{}
	}

	return &Client{
		walletAddressURL: cfg.WalletAddressURL,
		http:             httpClient,
		signer:           signer,
	}
}

func (c *Client) WalletAddressURL() string {
	return c.walletAddressURL
}

// Do sends one signed JSON exchange. accessToken, in and out may be empty.
func (c *Client) Do(ctx context.Context, method, url, accessToken string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if accessToken != "" {
		req.Header.Set("Authorization", "GNAP "+accessToken)
	}

	if err := c.signer.Sign(req, body); err != nil {
		return fmt.Errorf("sign request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Status: resp.StatusCode,
			Method: method,
			URL:    url,
			Body:   string(raw),
		}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}

	return nil
}
