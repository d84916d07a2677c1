// Package ui renders dashboard frames to the terminal.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/awsposture/internal/dashboard"
	"github.com/ppiankov/awsposture/internal/refresh"
	"github.com/ppiankov/awsposture/internal/view"
	"github.com/pterm/pterm"
)

// Terminal renders frames with pterm. It implements refresh.Renderer.
type Terminal struct{}

// NewTerminal creates a terminal renderer.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Render paints the KPI row, risk distribution, breakdowns, the active
// tab's cards, and recommendations.
func (t *Terminal) Render(f refresh.Frame) error {
	pterm.DefaultSection.Println("AWS Security Posture")
	pterm.Info.Printf("Fetched at %s\n\n", f.FetchedAt.Format("2006-01-02 15:04:05 MST"))

	kpis := [][]string{
		{"Category", "Avg Score", "Resources"},
		{"EC2", fmt.Sprintf("%.1f", f.Stats.EC2Score), strconv.Itoa(f.Stats.EC2Count)},
		{"S3", fmt.Sprintf("%.1f", f.Stats.S3Score), strconv.Itoa(f.Stats.S3Count)},
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(kpis).Render()

	if f.Stats.CriticalCount > 0 {
		pterm.Error.Printf("%d resources at Critical risk\n", f.Stats.CriticalCount)
	} else {
		pterm.Success.Println("No resources at Critical risk")
	}

	pterm.DefaultSection.WithLevel(2).Println("Risk Distribution")
	bars := []pterm.Bar{
		{Label: "Low", Value: f.Stats.Risk.Low, Style: pterm.NewStyle(pterm.FgGreen)},
		{Label: "Medium", Value: f.Stats.Risk.Medium, Style: pterm.NewStyle(pterm.FgYellow)},
		{Label: "High", Value: f.Stats.Risk.High, Style: pterm.NewStyle(pterm.FgLightRed)},
		{Label: "Critical", Value: f.Stats.Risk.Critical, Style: pterm.NewStyle(pterm.FgRed)},
	}
	_ = pterm.DefaultBarChart.WithHorizontal().WithBars(bars).WithShowValue().Render()

	pterm.DefaultSection.WithLevel(2).Println("Security Controls")
	controls := [][]string{
		{"Control", "Pass", "Fail"},
		{"EC2 EBS encryption", strconv.Itoa(f.Stats.EC2.Encrypted), strconv.Itoa(f.Stats.EC2.NotEncrypted)},
		{"EC2 restricted access", strconv.Itoa(f.Stats.EC2.Restricted), strconv.Itoa(f.Stats.EC2.PublicAccess)},
		{"S3 default encryption", strconv.Itoa(f.Stats.S3.Encrypted), strconv.Itoa(f.Stats.S3.NotEncrypted)},
		{"S3 public access block", strconv.Itoa(f.Stats.S3.Secured), strconv.Itoa(f.Stats.S3.PublicAccessAllowed)},
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(controls).Render()

	cards := f.EC2Cards
	title := "EC2 Instances"
	if f.Tab == refresh.TabS3 {
		cards = f.S3Cards
		title = "S3 Buckets"
	}
	pterm.DefaultSection.WithLevel(2).Println(title)
	renderCards(cards)

	if len(f.Recommendations) > 0 {
		pterm.DefaultSection.WithLevel(2).Println("Recommendations")
		renderRecommendations(f.Recommendations)
	}
	return nil
}

func renderCards(cards []view.Card) {
	if len(cards) == 0 {
		pterm.Info.Println("No assessments in this category.")
		return
	}

	data := [][]string{{"Name", "Score", "Risk", "State", "Issues"}}
	for _, c := range cards {
		issues := "-"
		if len(c.Issues) > 0 {
			issues = strings.Join(c.Issues, "; ")
			if c.MoreIssues != "" {
				issues += " " + c.MoreIssues
			}
		}
		state := c.StateBadge
		if state == "" {
			state = "-"
		}
		data = append(data, []string{
			c.Name,
			fmt.Sprintf("%.0f", c.Score),
			riskLabel(c.RiskLevel),
			state,
			issues,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderRecommendations(recs []view.RecommendationView) {
	data := [][]string{{"Priority", "Title", "Issue"}}
	for _, r := range recs {
		data = append(data, []string{badgeLabel(r.Badge), r.Title, r.Issue})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func riskLabel(level dashboard.RiskLevel) string {
	switch level {
	case dashboard.RiskCritical:
		return pterm.FgRed.Sprint("CRITICAL")
	case dashboard.RiskHigh:
		return pterm.FgLightRed.Sprint("HIGH")
	case dashboard.RiskMedium:
		return pterm.FgYellow.Sprint("MEDIUM")
	case dashboard.RiskLow:
		return pterm.FgGreen.Sprint("LOW")
	default:
		return pterm.FgGray.Sprint("UNKNOWN")
	}
}

func badgeLabel(badge string) string {
	switch badge {
	case dashboard.PriorityHigh:
		return pterm.FgRed.Sprint(badge)
	case dashboard.PriorityMedium:
		return pterm.FgYellow.Sprint(badge)
	default:
		return pterm.FgBlue.Sprint(badge)
	}
}
