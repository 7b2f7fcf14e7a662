package gesture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
)

// RemoteClassifier talks to the gesture model service over HTTP: frame
// embedding, nearest-neighbour prediction, and training status. The model
// itself lives outside this process; this client only moves bytes.
type RemoteClassifier struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// NewRemoteClassifier creates a classifier client for the given backend URL.
func NewRemoteClassifier(baseURL string, timeout time.Duration) *RemoteClassifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteClassifier{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		log:        logger.Default().WithPrefix("classifier"),
	}
}

var _ Classifier = (*RemoteClassifier)(nil)

type embedRequest struct {
	Frame []byte `json:"frame"`
}

type embedResponse struct {
	Features []float32 `json:"features"`
}

type predictRequest struct {
	Features []float32 `json:"features"`
	K        int       `json:"k"`
}

type predictResponse struct {
	Prediction *Prediction `json:"prediction"`
}

type statusResponse struct {
	TrainedClasses int `json:"trained_classes"`
}

func (c *RemoteClassifier) InferOnFrame(ctx context.Context, frame Frame) (FeatureVector, error) {
	var out embedResponse
	if err := c.post(ctx, "/embed", embedRequest{Frame: frame}, &out); err != nil {
		return nil, err
	}
	return FeatureVector(out.Features), nil
}

func (c *RemoteClassifier) Predict(ctx context.Context, features FeatureVector, k int) (*Prediction, error) {
	var out predictResponse
	if err := c.post(ctx, "/predict", predictRequest{Features: features, K: k}, &out); err != nil {
		return nil, err
	}
	return out.Prediction, nil
}

// NumTrainedClasses reports the backend's training status; any failure reads
// as untrained, which keeps sessions from starting against a dead model.
func (c *RemoteClassifier) NumTrainedClasses() int {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return 0
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("status request failed: %v", err)
		return 0
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("status request failed: status=%d", resp.StatusCode)
		return 0
	}
	var out statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Warn("failed to decode status response: %v", err)
		return 0
	}
	return out.TrainedClasses
}

func (c *RemoteClassifier) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("classifier %s status %d: %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
