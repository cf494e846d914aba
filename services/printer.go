package services

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"mercadolibre-insights/lexicon"
	"mercadolibre-insights/models"
)

const (
	topFeatures = 5
	ruleWidth   = 54
)

// Printer renders an InsightReport as a console summary.
type Printer struct {
	out       io.Writer
	useColors bool
}

func NewPrinter(out io.Writer, useColors bool) *Printer {
	return &Printer{out: out, useColors: useColors}
}

// Print writes the summary of r.
func (p *Printer) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", ruleWidth)

	p.colored(color.New(color.FgMagenta, color.Bold), "\n%s\n  MERCADOLIBRE MARKET INSIGHTS\n%s\n", sep, sep)

	p.header("Overview")
	fmt.Fprintf(p.out, "  Total products analysed : %s\n", p.bold(strconv.Itoa(r.TotalProducts)))

	p.printPrices(r)
	p.printFeatures(r.FeatureAnalysis)
	p.printSentiment(r.SentimentAnalysis.Reviews())
	p.printFeedback(r.CustomerFeedback[models.SourceReviews])
	p.printRecommendations(r.MarketingRecommendations)

	p.header("Keywords")
	fmt.Fprintf(p.out, "  Descriptions : %s\n", joinOrNone(r.Keywords.Descriptions))
	fmt.Fprintf(p.out, "  Reviews      : %s\n", joinOrNone(r.Keywords.Reviews))

	p.colored(color.New(color.FgMagenta, color.Bold), "\n%s\n\n", sep)
}

func (p *Printer) printPrices(r *models.InsightReport) {
	p.header("Price Statistics")
	pr := r.PriceAnalysis.PriceRange
	if !pr.Avg.Valid {
		fmt.Fprintln(p.out, "  No price data available")
		return
	}
	fmt.Fprintf(p.out, "  Average price : %s\n", p.green(formatAmount(pr.Avg)))
	fmt.Fprintf(p.out, "  Minimum price : %s\n", p.green(formatAmount(pr.Min)))
	fmt.Fprintf(p.out, "  Maximum price : %s\n", p.green(formatAmount(pr.Max)))
	fmt.Fprintf(p.out, "  Competitiveness : %s\n\n", r.CompetitiveAnalysis.PricePositioning.PriceCompetitiveness)

	seg := r.PriceAnalysis.PriceSegments
	p.table([]string{"SEGMENT", "PRODUCTS"}, [][]string{
		{"budget", strconv.Itoa(seg.Budget)},
		{"mid-range", strconv.Itoa(seg.MidRange)},
		{"premium", strconv.Itoa(seg.Premium)},
	})
}

func (p *Printer) printFeatures(fc models.FeatureCounts) {
	p.header("Top Features")
	ranked := slices.Clone(fc)
	slices.SortStableFunc(ranked, func(a, b models.FeatureCount) int { return b.Mentions - a.Mentions })

	var rows [][]string
	for _, f := range ranked {
		if f.Mentions == 0 || len(rows) == topFeatures {
			break
		}
		rows = append(rows, []string{f.Feature, strconv.Itoa(f.Mentions)})
	}
	if len(rows) == 0 {
		fmt.Fprintln(p.out, "  No feature mentions found")
		return
	}
	p.table([]string{"FEATURE", "MENTIONS"}, rows)
}

func (p *Printer) printSentiment(cats models.CategorySentiments) {
	p.header("Review Sentiment by Category")
	if len(cats) == 0 {
		fmt.Fprintln(p.out, "  No reviews analysed")
		return
	}
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			c.Category,
			c.Result.Sentiment,
			strconv.FormatFloat(c.Result.Polarity, 'f', 2, 64),
			strconv.FormatFloat(c.Result.Confidence, 'f', 2, 64),
		})
	}
	p.table([]string{"CATEGORY", "SENTIMENT", "POLARITY", "CONFIDENCE"}, rows)
}

func (p *Printer) printFeedback(fb models.FeedbackSummary) {
	p.header("Customer Feedback")
	for _, level := range lexicon.SatisfactionLevels() {
		fmt.Fprintf(p.out, "  %-18s %d\n", level.Name, fb.SatisfactionLevels[level.Name])
	}
	for _, th := range lexicon.Themes() {
		if n := fb.CommonThemes[th.Name]; n > 0 {
			fmt.Fprintf(p.out, "  theme %-12s %d\n", th.Name, n)
		}
	}
	p.list("Issues", fb.SpecificIssues)
	p.list("Praise", fb.PraisePoints)
	p.list("Suggestions", fb.Suggestions)
}

func (p *Printer) printRecommendations(mr models.MarketingRecommendations) {
	p.header("Marketing Recommendations")
	fmt.Fprintf(p.out, "  Target audience  : %s\n", mr.TargetAudience)
	fmt.Fprintf(p.out, "  Pricing strategy : %s\n", mr.PricingStrategy)
	fmt.Fprintf(p.out, "  Content focus    : %s\n", mr.ContentStrategy.ContentFocus)
	fmt.Fprintf(p.out, "  Selling points   : %s\n\n", joinOrNone(mr.KeySellingPoints))

	rows := make([][]string, 0, len(mr.ActionItems))
	for _, a := range mr.ActionItems {
		rows = append(rows, []string{p.priority(a.Priority), a.Action})
	}
	p.table([]string{"PRIORITY", "ACTION"}, rows)
}

func (p *Printer) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(p.out, "  %s:\n", title)
	for _, it := range items {
		fmt.Fprintf(p.out, "    - %s\n", truncate(it, 70))
	}
}

func (p *Printer) header(title string) {
	p.colored(color.New(color.FgYellow, color.Bold), "\n  %s\n", title)
	fmt.Fprintf(p.out, "  %s\n", strings.Repeat("─", ruleWidth))
}

func (p *Printer) table(header []string, rows [][]string) {
	t := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{Borders: tw.BorderNone}),
	)
	t.Header(header)
	_ = t.Bulk(rows)
	_ = t.Render()
}

func (p *Printer) colored(c *color.Color, format string, args ...any) {
	if p.useColors {
		c.Fprintf(p.out, format, args...)
		return
	}
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) bold(s string) string {
	if p.useColors {
		return color.New(color.Bold).Sprint(s)
	}
	return s
}

func (p *Printer) green(s string) string {
	if p.useColors {
		return color.GreenString(s)
	}
	return s
}

func (p *Printer) priority(level string) string {
	if !p.useColors {
		return level
	}
	switch level {
	case priorityHigh:
		return color.RedString(level)
	case priorityMedium:
		return color.YellowString(level)
	default:
		return level
	}
}

func formatAmount(a models.Amount) string {
	if !a.Valid {
		return models.NotAvailable
	}
	return fmt.Sprintf("$%.2f", a.Value)
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
