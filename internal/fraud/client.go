package fraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Attributes describe a transaction to be classified.
type Attributes struct {
	Amount      float64 `json:"amount"`
	Location    string  `json:"location"`
	Time        int64   `json:"time"` // epoch milliseconds
	Description string  `json:"description"`
}

// Verdict is the classifier's answer for one transaction.
type Verdict struct {
	IsFraud             bool                   `json:"isFraud"`
	Confidence          float64                `json:"confidence"`
	DescriptionAnalysis map[string]interface{} `json:"descriptionAnalysis"`
	Reasons             []string               `json:"reasons"`
	CheckedAt           time.Time              `json:"checkedAt"`
}

// DefaultVerdict is the non-fraud, zero-confidence verdict used when the
// classifier cannot be reached.
func DefaultVerdict(now time.Time) Verdict {
	return Verdict{
		IsFraud:             false,
		Confidence:          0,
		DescriptionAnalysis: map[string]interface{}{},
		Reasons:             []string{},
		CheckedAt:           now,
	}
}

// Classifier decides whether a transaction looks fraudulent.
type Classifier interface {
	Classify(ctx context.Context, attrs Attributes) (Verdict, error)
}

// HTTPClassifier calls the external AI service over HTTP.
type HTTPClassifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClassifier(baseURL string, timeout time.Duration) *HTTPClassifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPClassifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// predictResponse mirrors the AI service's /predict reply.
type predictResponse struct {
	Fraud               bool                   `json:"fraud"`
	Confidence          float64                `json:"confidence"`
	DescriptionAnalysis map[string]interface{} `json:"description_analysis"`
}

func (h *HTTPClassifier) Classify(ctx context.Context, attrs Attributes) (Verdict, error) {
	body, err := json.Marshal(attrs)
	if err != nil {
		return Verdict{}, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return Verdict{}, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("call fraud service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Verdict{}, fmt.Errorf("fraud service returned status %d", resp.StatusCode)
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return Verdict{}, fmt.Errorf("decode predict response: %w", err)
	}

	confidence := pr.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	analysis := pr.DescriptionAnalysis
	if analysis == nil {
		analysis = map[string]interface{}{}
	}

	return Verdict{
		IsFraud:             pr.Fraud,
		Confidence:          confidence,
		DescriptionAnalysis: analysis,
		Reasons:             extractReasons(analysis),
		CheckedAt:           time.Now(),
	}, nil
}

// extractReasons pulls the ordered "reasons" list out of the analysis, if any.
func extractReasons(analysis map[string]interface{}) []string {
	reasons := []string{}
	raw, ok := analysis["reasons"].([]interface{})
	if !ok {
		return reasons
	}
	for _, r := range raw {
		if s, ok := r.(string); ok {
			reasons = append(reasons, s)
		}
	}
	return reasons
}

// Check classifies attrs and absorbs any failure into the default verdict.
// A failed call is logged, never surfaced to the caller; there are no
// retries.
func Check(ctx context.Context, cls Classifier, attrs Attributes) Verdict {
	verdict, err := cls.Classify(ctx, attrs)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"component": "fraud",
			"amount":    attrs.Amount,
			"location":  attrs.Location,
		}).WithError(err).Warn("fraud check failed, using default verdict")
		return DefaultVerdict(time.Now())
	}
	return verdict
}
