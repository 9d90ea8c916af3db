package models

// RiskBadge is the badge shown next to the churn risk heading.
type RiskBadge struct {
	Label    string `json:"label"`
	Severity string `json:"severity"`
}

// Summary is the rendered view of a panel: every field is derived from state.
type Summary struct {
	Percent     *int       `json:"percent"`
	PercentText string     `json:"percent_text"`
	BarWidth    string     `json:"bar_width"`
	Badge       *RiskBadge `json:"badge,omitempty"`
	Prediction  string     `json:"prediction"`
	Source      string     `json:"source"`
	PrettyJSON  string     `json:"pretty_json"`
}

// TemplateData feeds views/panel.html.
type TemplateData struct {
	UserInput  string
	Loading    bool
	Error      string
	Summary    Summary
	ModelLabel string
	SampleIDs  []string
	Endpoint   string
}

// PanelView is the JSON form of a panel returned to script clients.
type PanelView struct {
	Phase      string      `json:"phase"`
	CustomerID string      `json:"customer_id"`
	Loading    bool        `json:"loading"`
	Error      string      `json:"error,omitempty"`
	Result     *Prediction `json:"result"`
	Summary    Summary     `json:"summary"`
}
