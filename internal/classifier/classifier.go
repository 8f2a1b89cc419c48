// Package classifier wraps the external waste-classification model. The
// model is a black box: it takes image bytes and returns ranked labels
// with probabilities. Everything else about it is out of scope.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"e-waste-api-server/internal/apperr"
)

// AutoConfirmThreshold is the probability above which the top label may
// be auto-confirmed; at or below it the client must ask the user to pick
// the item manually.
const AutoConfirmThreshold = 0.85

type Prediction struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

type Classifier interface {
	Classify(ctx context.Context, image io.Reader) ([]Prediction, error)
}

// HTTPClassifier posts the image to a hosted pretrained model endpoint.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

func NewHTTPClassifier(url string, timeout time.Duration) *HTTPClassifier {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClassifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, image io.Reader) ([]Prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, image)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: classifier request failed: %v", apperr.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: classifier returned status %d", apperr.ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: classifier rejected the image (status %d)", apperr.ErrInvalidInput, resp.StatusCode)
	}

	var body struct {
		Predictions []Prediction `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}

	sort.SliceStable(body.Predictions, func(i, j int) bool {
		return body.Predictions[i].Probability > body.Predictions[j].Probability
	})
	return body.Predictions, nil
}

// TopCandidate picks the highest-ranked prediction and reports whether
// the client must confirm it manually.
func TopCandidate(predictions []Prediction) (top Prediction, needsManualConfirm bool, ok bool) {
	if len(predictions) == 0 {
		return Prediction{}, true, false
	}
	top = predictions[0]
	return top, top.Probability <= AutoConfirmThreshold, true
}
