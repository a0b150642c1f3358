package banana

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ironsheep/banana-tools-mcp/internal/imaging"
)

const (
	// DefaultEndpoint is the image-edit API.
	DefaultEndpoint = "https://yinothing.com/api/google/banana"
	// DefaultTimeout bounds a single edit request.
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 64 << 20
)

// Result is the outcome of an edit. It is always well-formed: on failure Image
// is a blank placeholder and Text repeats Failure.Message.
type Result struct {
	Image   *imaging.Buffer
	Text    string
	Failure *Failure
}

// Failed reports whether the edit failed.
func (r *Result) Failed() bool {
	return r.Failure != nil
}

func failed(f *Failure) *Result {
	return &Result{Image: imaging.Placeholder(), Text: f.Message, Failure: f}
}

// editResponse is the success body of the API.
type editResponse struct {
	ImageURLs []string `json:"imageUrls"`
	Text      string   `json:"text"`
}

// Client sends edit requests. It is safe for concurrent use.
type Client struct {
	endpoint string
	hc       *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTimeout overrides DefaultTimeout. The current HTTP client is copied, so
// a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.hc
			hc.Timeout = d
			c.hc = &hc
		}
	}
}

// WithHTTPClient replaces the HTTP client. WithTimeout applied after it sets
// the timeout on a copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithRateLimit limits outbound edits to rps requests per second with the given
// burst. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for DefaultEndpoint with DefaultTimeout and no rate limit.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		hc:       &http.Client{Timeout: DefaultTimeout},
		limiter:  rate.NewLimiter(rate.Inf, 0),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL edits are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Edit performs a single edit. It never returns nil.
func (c *Client) Edit(ctx context.Context, req EditRequest) *Result {
	logger := c.logger.With("request_id", uuid.NewString(), "images", len(req.Images))
	start := time.Now()

	res := c.edit(ctx, req)

	elapsed := time.Since(start)
	observe(res, elapsed)
	if res.Failure != nil {
		logger.Warn("image edit failed",
			"kind", res.Failure.Kind,
			"status", res.Failure.StatusCode,
			"error", res.Failure.Message,
			"duration", elapsed)
	} else {
		logger.Info("image edit completed",
			"width", res.Image.Width,
			"height", res.Image.Height,
			"duration", elapsed)
	}
	return res
}

func (c *Client) edit(ctx context.Context, req EditRequest) *Result {
	if f := req.check(); f != nil {
		return failed(f)
	}

	contentType, body, f := encodeForm(req)
	if f != nil {
		return failed(f)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return failed(transportFailure(err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return failed(transportFailure(err))
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return failed(transportFailure(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return failed(transportFailure(fmt.Errorf("failed to read response body: %w", err)))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failed(&Failure{
			Kind:       KindRemote,
			Message:    describeHTTPError(resp.StatusCode, respBody, c.endpoint),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		})
	}

	return decodeResponse(respBody)
}

func decodeResponse(body []byte) *Result {
	var r editResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return failed(payloadFailure("invalid API response", err))
	}
	if len(r.ImageURLs) == 0 || r.ImageURLs[0] == "" {
		return failed(&Failure{Kind: KindPayload, Message: "Error: API response has no imageUrls entry"})
	}

	img, err := imaging.DecodePayload(r.ImageURLs[0])
	if err != nil {
		return failed(payloadFailure("failed to decode image payload", err))
	}
	return &Result{Image: img, Text: r.Text}
}

func transportFailure(err error) *Failure {
	return &Failure{Kind: KindTransport, Message: "Error: " + err.Error(), Err: err}
}

func payloadFailure(what string, err error) *Failure {
	return &Failure{Kind: KindPayload, Message: fmt.Sprintf("Error: %s: %v", what, err), Err: err}
}
