package view

import (
	"fmt"
	"strings"

	"github.com/ppiankov/awsposture/internal/dashboard"
)

// maxCardIssues is how many issues a card shows before collapsing the
// rest into a "+N more" marker.
const maxCardIssues = 3

// Card is the renderable projection of one assessment.
type Card struct {
	Name       string              `json:"name"`
	Category   dashboard.Category  `json:"category"`
	Score      float64             `json:"score"`
	ScoreColor Color               `json:"score_color"`
	RiskLevel  dashboard.RiskLevel `json:"risk_level"`
	RiskColor  Color               `json:"risk_color"`
	Issues     []string            `json:"issues"`
	MoreIssues string              `json:"more_issues,omitempty"`
	StateBadge string              `json:"state_badge,omitempty"`
}

// RecommendationView is the renderable projection of one recommendation.
type RecommendationView struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Issue        string `json:"issue"`
	ResourceType string `json:"resource_type,omitempty"`
	Badge        string `json:"badge"`
	StyleClass   string `json:"style_class"`
}

// AssessmentCard builds the card viewmodel for one assessment. The
// display name falls back to "Unknown"; issues beyond the first three
// collapse into a "+N more" marker; EC2 cards carry a state badge.
func AssessmentCard(a dashboard.Assessment, category dashboard.Category) Card {
	card := Card{
		Name:       displayName(a, category),
		Category:   category,
		Score:      a.SecurityScore,
		ScoreColor: ScoreColor(a.SecurityScore),
		RiskLevel:  a.RiskLevel,
		RiskColor:  RiskColor(a.RiskLevel),
		Issues:     a.Issues,
	}

	if len(a.Issues) > maxCardIssues {
		card.Issues = a.Issues[:maxCardIssues]
		card.MoreIssues = fmt.Sprintf("+%d more", len(a.Issues)-maxCardIssues)
	}

	if category == dashboard.CategoryEC2 && a.State != "" {
		card.StateBadge = a.State
	}
	return card
}

// RecommendationCard builds the viewmodel for one recommendation.
// Priority is uppercased for the badge and lowercased for the style
// class; missing text fields get generic placeholders.
func RecommendationCard(r dashboard.RecommendationRecord) RecommendationView {
	priority := strings.TrimSpace(r.Priority)
	if priority == "" {
		priority = dashboard.PriorityMedium
	}

	return RecommendationView{
		Title:        orDefault(r.Title, "Security Recommendation"),
		Description:  orDefault(r.Description, "No description provided"),
		Issue:        orDefault(r.Issue, "General"),
		ResourceType: r.ResourceType,
		Badge:        strings.ToUpper(priority),
		StyleClass:   "priority-" + strings.ToLower(priority),
	}
}

func displayName(a dashboard.Assessment, category dashboard.Category) string {
	name := a.BucketName
	if category == dashboard.CategoryEC2 {
		name = a.InstanceName
	}
	if name == "" {
		name = a.ResourceID
	}
	if name == "" {
		return "Unknown"
	}
	return name
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
