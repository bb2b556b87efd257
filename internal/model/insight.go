package model

// InsightType classifies an advisory insight for display.
type InsightType string

const (
	InsightSuccess InsightType = "success"
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
)

// Insight is one piece of advisory text produced by the analysis
// collaborator. Best-effort only: the engine never depends on it.
type Insight struct {
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Type    InsightType `json:"type"`
}
