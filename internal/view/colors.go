// Package view turns assessments and recommendations into renderable
// field sets: colors, gradients, and card viewmodels. It never touches
// a rendering surface itself.
package view

import (
	"github.com/ppiankov/awsposture/internal/aggregate"
	"github.com/ppiankov/awsposture/internal/dashboard"
)

// Color is a hex color value handed to renderers.
type Color string

const (
	ColorGreen   Color = "#10b981"
	ColorYellow  Color = "#f59e0b"
	ColorOrange  Color = "#f97316"
	ColorRed     Color = "#ef4444"
	ColorNeutral Color = "#6b7280"
)

// Gradient is a two-stop color spec for score gauges.
type Gradient struct {
	From Color `json:"from"`
	To   Color `json:"to"`
}

var riskColors = map[dashboard.RiskLevel]Color{
	dashboard.RiskLow:      ColorGreen,
	dashboard.RiskMedium:   ColorYellow,
	dashboard.RiskHigh:     ColorOrange,
	dashboard.RiskCritical: ColorRed,
}

var riskGradients = map[dashboard.RiskLevel]Gradient{
	dashboard.RiskLow:      {From: ColorGreen, To: "#059669"},
	dashboard.RiskMedium:   {From: ColorYellow, To: "#d97706"},
	dashboard.RiskHigh:     {From: ColorOrange, To: "#ea580c"},
	dashboard.RiskCritical: {From: ColorRed, To: "#dc2626"},
}

// ScoreColor maps a score to its tier color. Tiers are cut at the same
// points as aggregate.OverallRisk, by construction.
func ScoreColor(score float64) Color {
	return riskColors[aggregate.OverallRisk(score)]
}

// ScoreGradient maps a score to the gradient of its tier.
func ScoreGradient(score float64) Gradient {
	return riskGradients[aggregate.OverallRisk(score)]
}

// RiskColor maps a risk level to its display color. Unrecognized levels
// (including Unknown) get the neutral fallback.
func RiskColor(level dashboard.RiskLevel) Color {
	if c, ok := riskColors[level]; ok {
		return c
	}
	return ColorNeutral
}
