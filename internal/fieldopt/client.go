package fieldopt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrSolver indicates the solver answered with a non-success status.
var ErrSolver = errors.New("solver request failed")

// SubmitPath is the solver endpoint relative to the base URL.
const SubmitPath = "/api/compute"

// Response is the solver's reply. Data is passed through untouched.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Retries int
}

// Client posts requests to a FieldOpt solver.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates a solver client. A nil logger disables logging.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{httpClient: httpClient, logger: logger}
}

// Submit posts req and returns the solver's reply.
func (c *Client) Submit(ctx context.Context, req Request) (Response, error) {
	c.logger.Info("submitting solver request",
		zap.Int("wells", wellCount(req)),
		zap.String("path", SubmitPath),
	)

	var out Response
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post(SubmitPath)
	if err != nil {
		c.logger.Error("solver request failed", zap.Error(err))
		return Response{}, fmt.Errorf("fieldopt: submit: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("solver returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", out.Message),
		)
		return out, fmt.Errorf("fieldopt: %w: %d %s", ErrSolver, resp.StatusCode(), out.Message)
	}

	c.logger.Info("solver request accepted",
		zap.Int("status_code", resp.StatusCode()),
		zap.Duration("elapsed", resp.Time()),
	)
	return out, nil
}

func wellCount(req Request) int {
	if n, ok := req.Block[KeyN].Value.(int); ok {
		return n
	}
	return 0
}
