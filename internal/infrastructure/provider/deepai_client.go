package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/nexahub/nexahub-backend/internal/core/domain/operation"
	"github.com/nexahub/nexahub-backend/internal/core/ports"
)

var providerRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "provider_requests_total",
		Help: "The total number of requests issued to the text provider",
	},
	[]string{"endpoint", "status"},
)

func init() {
	prometheus.MustRegister(providerRequestsTotal)
}

// DeepAIConfig holds provider client configuration.
type DeepAIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DeepAIClient executes built provider requests against the Deep AI HTTP API.
// The client keeps no per-call state and is safe to share across concurrent
// requests.
type DeepAIClient struct {
	config     *DeepAIConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewDeepAIClient(config *DeepAIConfig, logger *logrus.Logger) ports.ProviderClient {
	return &DeepAIClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}
}

type deepAIResponse struct {
	ID     string `json:"id"`
	Output string `json:"output"`
}

// Send issues the request once. The configured client timeout bounds the
// call; cancelling ctx aborts the outbound request.
func (c *DeepAIClient) Send(ctx context.Context, req *operation.ProviderRequest) (*operation.Result, error) {
	form := url.Values{}
	form.Set("text", req.Prompt)
	if req.Params.TargetLanguage != "" {
		form.Set("target_language", req.Params.TargetLanguage)
	}
	if req.Params.MaxLength > 0 {
		form.Set("max_length", strconv.Itoa(req.Params.MaxLength))
	}
	if req.Params.Temperature > 0 {
		form.Set("temperature", strconv.FormatFloat(req.Params.Temperature, 'f', -1, 64))
	}

	endpoint := c.config.BaseURL + string(req.Endpoint)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	httpReq.Header.Set("Api-Key", c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		providerRequestsTotal.WithLabelValues(string(req.Endpoint), "network_error").Inc()
		return nil, c.classifyTransportError(req.Endpoint, err)
	}
	defer resp.Body.Close()

	providerRequestsTotal.WithLabelValues(string(req.Endpoint), strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &operation.ProviderError{Cause: fmt.Errorf("failed to read provider response: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.WithFields(logrus.Fields{"endpoint": req.Endpoint}).Error("provider rejected credentials")
		return nil, &operation.ProviderAuthError{}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.WithFields(logrus.Fields{
			"endpoint": req.Endpoint,
			"status":   resp.StatusCode,
			"body":     string(body),
		}).Error("provider returned error response")
		return nil, &operation.ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed deepAIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &operation.ProviderError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Cause:      fmt.Errorf("failed to decode provider response: %w", err),
		}
	}

	if parsed.Output == "" {
		return nil, &operation.ProviderEmptyResponseError{Endpoint: req.Endpoint}
	}

	return &operation.Result{Output: parsed.Output}, nil
}

// classifyTransportError separates connect/timeout failures from other
// network-level errors.
func (c *DeepAIClient) classifyTransportError(endpoint operation.Endpoint, err error) error {
	c.logger.WithFields(logrus.Fields{"endpoint": endpoint}).WithError(err).Error("provider request failed")

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &operation.ProviderTimeoutError{Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &operation.ProviderTimeoutError{Cause: err}
	}

	return &operation.ProviderError{Cause: err}
}
