package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	apperrors "github.com/umalmyha/leads/internal/errors"
	"github.com/umalmyha/leads/internal/model"
)

// DefaultDateLayout matches en-US short calendar date
const DefaultDateLayout = "1/2/2006"

const fileDateLayout = "2006-01-02"

// MIMECSV is content type of exported file
const MIMECSV = "text/csv; charset=utf-8"

var header = []string{"Name", "Mobile", "Email", "Budget", "Location", "Preferred", "Status", "Date"}

// Options controls how creation date is rendered
type Options struct {
	DateLayout string
	Location   *time.Location
}

func (o Options) date(t time.Time) string {
	layout := o.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}

	loc := o.Location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout)
}

// WriteCSV writes header and one row per requirement, empty selection is rejected
func WriteCSV(w io.Writer, requirements []*model.Requirement, opts Options) error {
	if len(requirements) == 0 {
		return apperrors.ErrNothingToExport
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header - %w", err)
	}

	for _, r := range requirements {
		row := []string{
			r.Name,
			r.Mobile,
			r.Email,
			strconv.FormatFloat(r.Budget, 'f', -1, 64),
			r.CurrentLocation,
			r.PreferredLocation,
			string(r.Status),
			opts.date(r.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for requirement %s - %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FileName builds export file name from prefix and current calendar date
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format(fileDateLayout))
}
