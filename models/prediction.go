package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// PredictRequest is the body sent to the gateway.
type PredictRequest struct {
	CustomerID string `json:"customer_id"`
}

// Prediction is the gateway payload. The raw bytes are kept as received so
// the JSON pane preserves the gateway's key order.
type Prediction struct {
	raw    json.RawMessage
	value  any
	fields map[string]any
}

// ParsePrediction decodes body as any JSON value. Numbers are kept as
// json.Number.
func ParsePrediction(body []byte) (*Prediction, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, errors.New("invalid JSON payload")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	p := &Prediction{raw: append(json.RawMessage(nil), trimmed...), value: v}
	if obj, ok := v.(map[string]any); ok {
		p.fields = obj
	}
	return p, nil
}

// Raw returns the payload exactly as received.
func (p *Prediction) Raw() json.RawMessage {
	if p == nil {
		return nil
	}
	return p.raw
}

// Value returns the decoded payload.
func (p *Prediction) Value() any {
	if p == nil {
		return nil
	}
	return p.value
}

// Field returns a top-level field of an object payload.
func (p *Prediction) Field(name string) (any, bool) {
	if p == nil || p.fields == nil {
		return nil, false
	}
	v, ok := p.fields[name]
	return v, ok
}

// ChurnProbability reports churn_probability only when it is a JSON number.
func (p *Prediction) ChurnProbability() (float64, bool) {
	v, ok := p.Field("churn_probability")
	if !ok {
		return 0, false
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// RiskLevel returns risk_level when present and not null.
func (p *Prediction) RiskLevel() (any, bool) {
	v, ok := p.Field("risk_level")
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// MarshalJSON emits the payload as received.
func (p *Prediction) MarshalJSON() ([]byte, error) {
	if p == nil || len(p.raw) == 0 {
		return []byte("null"), nil
	}
	return p.raw, nil
}
