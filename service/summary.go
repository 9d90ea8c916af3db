package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/Churn-Demo/frontend/models"
)

// Placeholder stands in for values that are not available yet.
const Placeholder = "—"

const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Percentage is round(churn_probability * 100), half rounding up. The
// second result is false when the field is missing or not a number.
func Percentage(p *models.Prediction) (int, bool) {
	prob, ok := p.ChurnProbability()
	if !ok {
		return 0, false
	}
	pct := math.Floor(prob*100 + 0.5)
	if math.IsInf(pct, 0) || math.IsNaN(pct) || pct > math.MaxInt32 || pct < math.MinInt32 {
		return 0, false
	}
	return int(pct), true
}

// Badge classifies risk_level. No badge is returned when the field is
// absent or empty.
func Badge(p *models.Prediction) *models.RiskBadge {
	level, ok := p.RiskLevel()
	if !ok || !truthy(level) {
		return nil
	}
	label := messageString(level)

	severity := SeverityLow
	switch label {
	case "ALTO":
		severity = SeverityHigh
	case "MEDIO":
		severity = SeverityMedium
	}
	return &models.RiskBadge{Label: label, Severity: severity}
}

// BarWidth is the CSS width of the progress bar.
func BarWidth(p *models.Prediction) string {
	if pct, ok := Percentage(p); ok {
		return strconv.Itoa(pct) + "%"
	}
	return "0%"
}

// shown reports whether the page has a result to display. A falsy payload
// such as null, false, 0 or "" counts as none.
func shown(p *models.Prediction) bool {
	return p != nil && truthy(p.Value())
}

// PrettyJSON indents the payload by two spaces keeping its key order.
func PrettyJSON(p *models.Prediction) string {
	if !shown(p) {
		return "{}"
	}
	raw := p.Raw()
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func displayField(p *models.Prediction, name string) string {
	if !shown(p) {
		return Placeholder
	}
	v, _ := p.Field(name)
	return displayString(v)
}

// Summarize derives every rendered value from s.
func Summarize(s State) models.Summary {
	p := s.Result

	summary := models.Summary{
		PercentText: Placeholder,
		BarWidth:    BarWidth(p),
		Badge:       Badge(p),
		Prediction:  displayField(p, "prediction"),
		Source:      displayField(p, "source"),
		PrettyJSON:  PrettyJSON(p),
	}
	if pct, ok := Percentage(p); ok {
		summary.Percent = &pct
		summary.PercentText = strconv.Itoa(pct)
	}
	return summary
}

// View is the JSON form of s.
func View(s State) models.PanelView {
	return models.PanelView{
		Phase:      string(s.Phase),
		CustomerID: s.CustomerID,
		Loading:    s.Loading(),
		Error:      s.Error,
		Result:     s.Result,
		Summary:    Summarize(s),
	}
}
