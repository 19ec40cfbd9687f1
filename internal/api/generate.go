package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/soulguide/internal/errors"
	"github.com/diogo/soulguide/internal/logger"
	"github.com/diogo/soulguide/internal/models"
)

const (
	maxErrorBody    = 4096
	maxResponseBody = 64 << 20 // generated images arrive inline
)

// GenerateResponse sends the current turn with its history and returns the
// normalized reply. A missing API key fails with a CredentialError before any
// request is made; every other failure is returned as a ConnectionError.
func (c *Client) GenerateResponse(ctx context.Context, text, image string, history []models.Message) (models.Reply, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return models.Reply{}, apierrors.NewCredentialError("")
	}

	reply, err := c.doGenerate(ctx, text, image, history)
	if err != nil {
		logger.Error("generate failed", "error", err, "status", apierrors.GetHTTPStatus(err))
		return models.Reply{}, apierrors.NewConnectionError(err)
	}
	return reply, nil
}

func (c *Client) doGenerate(ctx context.Context, text, image string, history []models.Message) (models.Reply, error) {
	visual := IsVisualRequest(text)
	model := SelectModel(image != "", visual, c.textModel, c.imageModel)
	endpoint := c.Endpoint(model)

	payload := BuildRequest(text, image, history, c.systemInstruction, c.temperature)
	body, err := json.Marshal(payload)
	if err != nil {
		return models.Reply{}, fmt.Errorf("failed to build payload: %w", err)
	}

	logger.Debug("generate request",
		"model", model.Name,
		"image_model", model.Images,
		"visual", visual,
		"image", image != "",
		"contents", len(payload.Contents),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return models.Reply{}, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Reply{}, apierrors.NewNetworkError("generate content", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := errorMessage(errorBody)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return models.Reply{}, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, msg, string(errorBody))
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return models.Reply{}, apierrors.NewNetworkError("read response", endpoint, err)
	}

	reply, err := ParseResponse(respBody, c.silence)
	if err != nil {
		return models.Reply{}, err
	}

	logger.Debug("generate response",
		"model", model.Name,
		"text_len", len(reply.Text),
		"image", reply.HasImage(),
	)
	return reply, nil
}
