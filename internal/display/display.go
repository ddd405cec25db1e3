package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rsahil/equityscope/internal/pipeline"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Background(lipgloss.Color("#1F2937")).
		Padding(0, 1).
		MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	reportStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(1, 2).
		Width(80)

	buyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	sellStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	holdStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F59E0B"))

	pendingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	completedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	errorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#EF4444"))

	infoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6"))
)

// stageLabels maps stage names to their progress line labels.
var stageLabels = map[string]string{
	pipeline.StageResolver:     "Ticker Resolution",
	pipeline.StageFundamentals: "Fundamentals",
	pipeline.StagePrice:        "Price History",
	pipeline.StageNews:         "News Digest",
	pipeline.StageProfile:      "Company Details",
	pipeline.StageAnalyst:      "Final Synthesis",
}

// Banner shows the startup banner.
func Banner() {
	banner := `
 ███████╗ ██████╗ ██╗   ██╗██╗████████╗██╗   ██╗
 ██╔════╝██╔═══██╗██║   ██║██║╚══██╔══╝╚██╗ ██╔╝
 █████╗  ██║   ██║██║   ██║██║   ██║    ╚████╔╝
 ██╔══╝  ██║▄▄ ██║██║   ██║██║   ██║     ╚██╔╝
 ███████╗╚██████╔╝╚██████╔╝██║   ██║      ██║
 ╚══════╝ ╚══▀▀═╝  ╚═════╝ ╚═╝   ╚═╝      ╚═╝   scope
`
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED"))
	fmt.Print(style.Render(banner))
	fmt.Println(infoStyle.Render("   Company research and investment analysis"))
	fmt.Println()
}

// StageStarted prints the in-progress line for a stage.
func StageStarted(stageName string) {
	fmt.Printf("%s %s...\n", pendingStyle.Render("→"), stageLabel(stageName))
}

// StageFinished prints the completion line for a stage. A non-nil err
// marks the stage as degraded, not missing: downstream stages still ran
// on the fallback value.
func StageFinished(stageName string, err error) {
	if err != nil {
		fmt.Printf("%s %s (%v)\n", errorStyle.Render("✗"), stageLabel(stageName), err)
		return
	}
	fmt.Printf("%s %s\n", completedStyle.Render("✓"), stageLabel(stageName))
}

// Error prints an error message.
func Error(err error) {
	fmt.Println(errorStyle.Render(fmt.Sprintf("✗ Error: %v", err)))
}

// Info prints an informational message.
func Info(message string) {
	fmt.Println(infoStyle.Render(message))
}

func stageLabel(stageName string) string {
	if label, ok := stageLabels[stageName]; ok {
		return label
	}
	return stageName
}

// Report renders the final analysis state as a bordered terminal
// report. Missing or degraded sections render their placeholder values
// rather than disappearing.
func Report(st *pipeline.State) {
	if st == nil || st.FinalReport == nil {
		Error(fmt.Errorf("no report produced"))
		return
	}
	rep := st.FinalReport

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("📊 %s (%s)", st.CompanyName, st.Ticker)))

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s  %s\n", sectionStyle.Render("Recommendation:"), recommendationBadge(rep.Recommendation))
	fmt.Fprintf(&sb, "%s  sentiment %d/100, confidence %d/100", sectionStyle.Render("Scores:"), rep.SentimentScore, rep.ConfidenceScore)
	if rep.Volatility != "" {
		fmt.Fprintf(&sb, ", volatility %s", rep.Volatility)
	}
	sb.WriteString("\n\n")

	sb.WriteString(sectionStyle.Render("Summary"))
	sb.WriteString("\n")
	sb.WriteString(wrapText(rep.Summary, 72))
	sb.WriteString("\n\n")

	writeDetails(&sb, rep.CompanyDetails)

	if st.FinancialData != nil {
		writeMetrics(&sb, st.FinancialData.Metrics)
	}

	if st.NewsData != nil && st.NewsData.Summary != "" {
		sb.WriteString(sectionStyle.Render("News"))
		if st.NewsData.ImpactLevel != "" {
			fmt.Fprintf(&sb, " (impact: %s)", st.NewsData.ImpactLevel)
		}
		sb.WriteString("\n")
		sb.WriteString(wrapText(st.NewsData.Summary, 72))
		sb.WriteString("\n\n")
	}

	writeSwot(&sb, rep.Swot)

	fmt.Println(reportStyle.Render(strings.TrimRight(sb.String(), "\n")))
	fmt.Println()
}

func recommendationBadge(rec string) string {
	switch rec {
	case pipeline.RecommendBuy:
		return buyStyle.Render("▲ BUY")
	case pipeline.RecommendSell:
		return sellStyle.Render("▼ SELL")
	default:
		return holdStyle.Render("■ HOLD")
	}
}

func writeDetails(sb *strings.Builder, details pipeline.CompanyDetails) {
	sb.WriteString(sectionStyle.Render("Company"))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "CEO: %s | Founded: %s\n", details.CEO, details.Founded)
	fmt.Fprintf(sb, "Industry: %s | Sector: %s\n\n", details.Industry, details.Sector)
}

func writeMetrics(sb *strings.Builder, metrics map[string]string) {
	if len(metrics) == 0 {
		return
	}

	sb.WriteString(sectionStyle.Render("Fundamentals"))
	sb.WriteString("\n")
	for _, key := range pipeline.MetricKeys {
		value, ok := metrics[key]
		if !ok {
			continue
		}
		fmt.Fprintf(sb, "%-16s %s\n", key, value)
	}
	sb.WriteString("\n")
}

func writeSwot(sb *strings.Builder, swot pipeline.Swot) {
	groups := []struct {
		label string
		items []string
	}{
		{"Strengths", swot.Strengths},
		{"Weaknesses", swot.Weaknesses},
		{"Opportunities", swot.Opportunities},
		{"Threats", swot.Threats},
	}

	sb.WriteString(sectionStyle.Render("SWOT"))
	sb.WriteString("\n")
	for _, group := range groups {
		if len(group.items) == 0 {
			continue
		}
		fmt.Fprintf(sb, "%s:\n", group.label)
		for _, item := range group.items {
			fmt.Fprintf(sb, "  • %s\n", item)
		}
	}
}

// wrapText folds text at word boundaries to the given width.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}

	return sb.String()
}
