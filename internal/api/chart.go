package api

import (
	"fmt"

	"github.com/go-analyze/charts"
	"gitlab.com/yelinaung/expense-service/internal/models"
)

// renderCategoryChart creates a pie chart of the per-category spending
// breakdown. Returns PNG image bytes.
func renderCategoryChart(stats *models.ExpenseStats) ([]byte, error) {
	if len(stats.Categories) == 0 {
		return nil, fmt.Errorf("no category data to chart")
	}

	values := make([]float64, 0, len(stats.Categories))
	names := make([]string, 0, len(stats.Categories))
	for _, cs := range stats.Categories {
		values = append(values, cs.TotalAmount.InexactFloat64())
		names = append(names, cs.Category)
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: "Expense Breakdown by Category",
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}
