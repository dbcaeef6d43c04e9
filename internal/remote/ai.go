package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/farmchainx/trace-engine/internal/remote/dto"
)

// AIClient talks to the crop quality scoring service. The scoring model is
// opaque to the engine; only the score and verdict are consumed.
type AIClient struct {
	baseURL string
	http    *http.Client
}

// NewAIClient builds a scorer client for baseURL (e.g. "http://localhost:8000").
func NewAIClient(baseURL string, timeout time.Duration) *AIClient {
	return &AIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Score submits a crop image data URL and returns the scorer's verdict.
func (c *AIClient) Score(ctx context.Context, imageDataURL string) (dto.ScoreResponse, error) {
	payload, err := json.Marshal(dto.ScoreRequest{Image: imageDataURL})
	if err != nil {
		return dto.ScoreResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/score", bytes.NewReader(payload))
	if err != nil {
		return dto.ScoreResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return dto.ScoreResponse{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(res.Body)
		return dto.ScoreResponse{}, fmt.Errorf("score request failed with status %d: %s",
			res.StatusCode, strings.TrimSpace(string(text)))
	}

	var out dto.ScoreResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return dto.ScoreResponse{}, err
	}
	return out, nil
}
