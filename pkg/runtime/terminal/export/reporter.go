package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
)

type TableConfig struct {
	ColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{ColumnWidth: 22}
}

// Reporter renders filtered views for the terminal, as a fixed-width table
// or as CSV for piping into other tools.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (r *Reporter) Handle(view *domain.FilteredView) error {
	w := r.config.ColumnWidth

	separator := "+"
	for range view.Columns {
		separator += strings.Repeat("-", w+2) + "+"
	}

	formatRow := func(cells []string) string {
		var b strings.Builder
		b.WriteByte('|')
		for _, c := range cells {
			// Truncate on rune boundaries so multibyte names are never
			// split mid-sequence.
			if runes := []rune(c); len(runes) > w {
				c = string(runes[:w-1]) + "…"
			}
			fmt.Fprintf(&b, " %-*s |", w, c)
		}
		return b.String()
	}

	if _, err := fmt.Fprintf(r.writer, "\n%s (%d rows)\n", view.Name, len(view.Rows)); err != nil {
		return err
	}
	if view.Join != nil {
		fmt.Fprintf(r.writer, "join: %d unmatched left, %d unmatched right\n",
			view.Join.UnmatchedLeft, view.Join.UnmatchedRight)
	}

	fmt.Fprintln(r.writer, separator)
	fmt.Fprintln(r.writer, formatRow(view.Columns))
	fmt.Fprintln(r.writer, separator)
	for _, row := range view.Rows {
		cells := make([]string, len(view.Columns))
		for i, col := range view.Columns {
			cells[i] = row[col].Text()
		}
		fmt.Fprintln(r.writer, formatRow(cells))
	}
	_, err := fmt.Fprintln(r.writer, separator)
	return err
}

// HandleCSV writes the view as CSV with the view's column order.
func (r *Reporter) HandleCSV(view *domain.FilteredView) error {
	w := csv.NewWriter(r.writer)
	if err := w.Write(view.Columns); err != nil {
		return err
	}
	for _, row := range view.Rows {
		cells := make([]string, len(view.Columns))
		for i, col := range view.Columns {
			cells[i] = row[col].Text()
		}
		if err := w.Write(cells); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
