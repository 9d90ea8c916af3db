package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/Churn-Demo/frontend/logger"
	"github.com/Churn-Demo/frontend/models"
)

// PredictByIDPath is the gateway route resolving features by customer id.
const PredictByIDPath = "/api/predict/by-id"

// Predictor resolves a churn prediction for one customer id.
type Predictor interface {
	PredictByID(ctx context.Context, customerID string) (*models.Prediction, error)
}

// GatewayClient posts customer ids to the prediction gateway. It makes
// exactly one attempt per call.
type GatewayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGatewayClient builds a client for baseURL. A zero timeout leaves the
// call without a deadline beyond the caller's context.
func NewGatewayClient(baseURL string, timeout time.Duration) *GatewayClient {
	return NewGatewayClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewGatewayClientWithHTTP(baseURL string, httpClient *http.Client) *GatewayClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GatewayClient{baseURL: baseURL, httpClient: httpClient}
}

// Endpoint is the full URL the client posts to.
func (c *GatewayClient) Endpoint() string {
	return c.baseURL + PredictByIDPath
}

// PredictByID sends {"customer_id": customerID} and classifies the outcome
// into a *TransportError, *ProtocolError or *ApplicationError.
func (c *GatewayClient) PredictByID(ctx context.Context, customerID string) (*models.Prediction, error) {
	payload, err := json.Marshal(models.PredictRequest{CustomerID: customerID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if reqID := logger.RequestID(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() {
		_ = res.Body.Close()
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	prediction, err := models.ParsePrediction(body)
	if err != nil {
		return nil, &ProtocolError{StatusCode: res.StatusCode, Body: string(body)}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &ApplicationError{StatusCode: res.StatusCode, Message: applicationMessage(prediction)}
	}

	return prediction, nil
}

// applicationMessage picks detail, then error, then the generic text.
func applicationMessage(p *models.Prediction) string {
	for _, key := range []string{"detail", "error"} {
		if v, ok := p.Field(key); ok && truthy(v) {
			if msg := messageString(v); msg != "" {
				return msg
			}
		}
	}
	return GenericErrorMessage
}
