// Package charts renders spending visualizations as PNG files for delivery
// as message media.
package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/fridaybot/backend/internal/models"
)

// Renderer renders charts into files and returns the file name, relative to
// the renderer's directory.
type Renderer interface {
	// SpendingBreakdown renders a pie chart of spending per category.
	SpendingBreakdown(summary models.CategorySummary) (string, error)

	// SpendingTimeline renders cumulative spending over the days of a
	// month.
	SpendingTimeline(transactions []models.Transaction) (string, error)
}

// FileRenderer renders charts into a directory with go-chart.
type FileRenderer struct {
	dir string
}

// NewFileRenderer returns a FileRenderer writing into dir, creating it if
// needed.
func NewFileRenderer(dir string) (*FileRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating chart directory: %w", err)
	}

	return &FileRenderer{dir: dir}, nil
}

func (r *FileRenderer) SpendingBreakdown(summary models.CategorySummary) (string, error) {
	var values []chart.Value

	for _, category := range summary.Categories {
		if category.Spent.IsZero() {
			continue
		}

		spent, _ := category.Spent.Float64()
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s $%.2f", category.Name, spent),
			Value: spent,
		})
	}

	if len(values) == 0 {
		return "", fmt.Errorf("no spending to chart")
	}

	pie := chart.PieChart{
		Title:  "Total Expenditure",
		Width:  600,
		Height: 600,
		Values: values,
	}

	return r.save(&pie)
}

func (r *FileRenderer) SpendingTimeline(transactions []models.Transaction) (string, error) {
	if len(transactions) == 0 {
		return "", fmt.Errorf("no spending to chart")
	}

	// Transactions arrive sorted by date, accumulate spending per day.
	var xs, ys []float64
	total := 0.0

	for _, transaction := range transactions {
		amount, _ := transaction.Amount.Float64()
		total += amount

		day := float64(transaction.Date.Day())
		if n := len(xs); n > 0 && xs[n-1] == day {
			ys[n-1] = total
			continue
		}

		xs = append(xs, day)
		ys = append(ys, total)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("$%.2f Spent This Month", total),
		Width:  800,
		Height: 500,
		XAxis: chart.XAxis{
			Name: "Day of month",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
			},
		},
	}

	return r.save(&graph)
}

// renderable is the part of go-chart's chart types save needs.
type renderable interface {
	Render(provider chart.RendererProvider, w io.Writer) error
}

func (r *FileRenderer) save(c renderable) (string, error) {
	name := fmt.Sprintf("%s.png", uuid.NewString())

	file, err := os.Create(filepath.Join(r.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating chart file: %w", err)
	}
	defer file.Close()

	if err := c.Render(chart.PNG, file); err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return name, nil
}
