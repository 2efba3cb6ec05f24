// Package csvfile reads activity records from a Strava CSV export.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/okian/pacetrend/internal/adapters/source"
	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/pkg/logger"
	"github.com/okian/pacetrend/pkg/metrics"
)

// Name is the source label used in logs and metrics.
const Name = "csv"

// Column names read from the export header. Other columns are ignored.
const (
	colID             = "id"
	colName           = "name"
	colType           = "type"
	colDistance       = "distance"
	colMovingTime     = "moving_time"
	colStartDateLocal = "start_date_local"
)

// Reader loads the records of one CSV file.
type Reader struct {
	path string
}

var _ source.Source = (*Reader)(nil)

// New returns a Reader for the file at path.
func New(path string) *Reader {
	return &Reader{path: path}
}

// Name implements source.Source.
func (r *Reader) Name() string { return Name }

// Fetch opens the file and decodes every row.
func (r *Reader) Fetch(ctx context.Context) ([]model.Activity, error) {
	start := time.Now()
	f, err := os.Open(r.path)
	if err != nil {
		metrics.RecordSourceFetch(Name, "error", msSince(start))
		return nil, fmt.Errorf("%w: open %s: %w", source.ErrFetch, r.path, err)
	}
	defer func() { _ = f.Close() }()

	activities, err := Decode(ctx, f)
	if err != nil {
		metrics.RecordSourceFetch(Name, "error", msSince(start))
		return nil, err
	}
	metrics.RecordSourceFetch(Name, "ok", msSince(start))
	logger.Get().Info(ctx, "csv activities loaded",
		logger.String("path", r.path),
		logger.Int("records", len(activities)),
	)
	return activities, nil
}

// Decode parses a header-addressed CSV stream.
// An empty or unreadable cell leaves the corresponding field absent, so a bad
// row still reaches validation. Only read and header errors fail the stream.
func Decode(ctx context.Context, in io.Reader) ([]model.Activity, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", source.ErrParse, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := cols[colType]; !ok {
		return nil, fmt.Errorf("%w: missing %q column", source.ErrParse, colType)
	}

	log := logger.Get().Named("csv")
	var out []model.Activity
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", source.ErrParse, line, err)
		}
		a, bad := decodeRow(rec, cols)
		for _, c := range bad {
			log.Debug(ctx, "malformed csv cell dropped",
				logger.Int("line", line),
				logger.String("id", a.ID),
				logger.String("field", c.name),
				logger.String("value", c.value),
			)
		}
		out = append(out, a)
	}
	return out, nil
}

// badCell is a non-empty cell that did not parse.
type badCell struct {
	name  string
	value string
}

func decodeRow(rec []string, cols map[string]int) (model.Activity, []badCell) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	a := model.Activity{
		ID:   normalizeID(cell(colID)),
		Name: cell(colName),
		Type: cell(colType),
	}
	var bad []badCell
	var ok bool
	if a.DistanceMeters, ok = parseFloat(cell(colDistance)); !ok {
		bad = append(bad, badCell{colDistance, cell(colDistance)})
	}
	if a.MovingTimeSeconds, ok = parseFloat(cell(colMovingTime)); !ok {
		bad = append(bad, badCell{colMovingTime, cell(colMovingTime)})
	}
	if a.StartDateLocal, ok = parseTime(cell(colStartDateLocal)); !ok {
		bad = append(bad, badCell{colStartDateLocal, cell(colStartDateLocal)})
	}
	return a, bad
}

// normalizeID strips the ".0" suffix spreadsheet tools add to integer ids.
func normalizeID(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// parseFloat reports false only for a non-empty cell that is not a number.
func parseFloat(s string) (*float64, bool) {
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

func parseTime(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := model.ParseStartDate(s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
