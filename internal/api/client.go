// Package api adapts the chat conversation to the Gemini generateContent API.
package api

import (
	"fmt"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/diogo/soulguide/internal/models"
)

// DefaultTimeout bounds a single generate request when no timeout is configured
const DefaultTimeout = 300 * time.Second

// HTTPDoer is the part of an HTTP client the adapter needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client submits one generate request per turn
type Client struct {
	httpClient        HTTPDoer
	apiKey            string
	baseURL           string
	textModel         models.Model
	imageModel        models.Model
	systemInstruction string
	temperature       float64
	timeout           time.Duration
	silence           string
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the transport (tests pass a fake)
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithBaseURL sets the API host, e.g. for a proxy
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithModels overrides the model names used for text and image turns.
// Empty names keep the defaults.
func WithModels(textModel, imageModel string) ClientOption {
	return func(c *Client) {
		c.textModel = models.ModelFromName(textModel, models.ModelText)
		c.imageModel = models.ModelFromName(imageModel, models.ModelImage)
	}
}

// WithSystemInstruction sets the persona prompt sent with every request
func WithSystemInstruction(instruction string) ClientOption {
	return func(c *Client) {
		c.systemInstruction = instruction
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(temperature float64) ClientOption {
	return func(c *Client) {
		if temperature > 0 {
			c.temperature = temperature
		}
	}
}

// WithTimeout sets the transport timeout. Ignored when WithHTTPClient is used.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithSilence sets the reply text used when the model returns no text
func WithSilence(text string) ClientOption {
	return func(c *Client) {
		if text != "" {
			c.silence = text
		}
	}
}

// NewClient creates a Client for apiKey. An empty key is accepted here and
// reported by GenerateResponse before any request is made.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	client := &Client{
		apiKey:      apiKey,
		baseURL:     models.EndpointBase,
		textModel:   models.ModelText,
		imageModel:  models.ModelImage,
		temperature: models.DefaultTemperature,
		timeout:     DefaultTimeout,
		silence:     DefaultSilence,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// TextModel returns the model used for plain text turns
func (c *Client) TextModel() models.Model {
	return c.textModel
}

// ImageModel returns the model used for image turns
func (c *Client) ImageModel() models.Model {
	return c.imageModel
}

// Endpoint returns the generate URL for model
func (c *Client) Endpoint(model models.Model) string {
	return fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, models.APIVersion, model.Name)
}
