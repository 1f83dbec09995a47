package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/grasslabel/ipscore/internal/domain/scoring"
	"github.com/grasslabel/ipscore/pkg/errors"
)

// ExportRecord is one row of a historical export: the raw metrics the
// generation scored with, plus the scores it persisted.
type ExportRecord struct {
	PatentID string
	Title    string
	Rank     int
	Sector   string

	// YearMultiplier is persisted by the additive generation's export and
	// zero elsewhere.
	YearMultiplier float64

	// Metrics carries the export's own raw metric values, including which
	// rated metrics were present for the row.
	Metrics scoring.MetricSet

	// Scores maps profile id (the CSV's score_<id> columns, prefix
	// stripped) to the persisted score.
	Scores map[string]float64
}

// Export is a loaded historical export keyed by patent id.
type Export struct {
	Records map[string]*ExportRecord
}

// Len returns the number of records.
func (e *Export) Len() int { return len(e.Records) }

// scorePrefix marks persisted profile-score columns in export headers.
const scorePrefix = "score_"

// ratingColumns maps export header names to rated metric fields.
var ratingColumns = func() map[string]scoring.Field {
	m := make(map[string]scoring.Field)
	for _, f := range scoring.RatingFields() {
		m[string(f)] = f
	}
	return m
}()

// maxTitleLen bounds stored titles; exports carry full titles but the report
// only ever shows a prefix.
const maxTitleLen = 60

// LoadExport reads a historical export CSV.  The file is a required source:
// if it cannot be opened the run must abort.  Individual malformed fields
// are coerced (0 / absent) and malformed rows are skipped; only a file-level
// read failure is an error.
func LoadExport(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.MissingRequiredSource("historical export not readable").
			WithDetail(path).WithCause(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMalformedValue, "failed to read export header").
			WithDetail(path)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	ex := &Export{Records: make(map[string]*ExportRecord)}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A ragged or unquotable row is a record-level defect; skip it.
			continue
		}

		rec := &ExportRecord{Scores: make(map[string]float64)}
		for i, col := range header {
			if i >= len(row) {
				break
			}
			val := row[i]
			switch col {
			case "patent_id":
				rec.PatentID = strings.TrimSpace(val)
			case "title":
				if len(val) > maxTitleLen {
					val = val[:maxTitleLen]
				}
				rec.Title = val
			case "rank":
				rec.Rank = intOrZero(val)
			case "sector":
				rec.Sector = strings.TrimSpace(val)
			case "year_multiplier":
				rec.YearMultiplier = floatOrZero(val)
			case "years_remaining":
				rec.Metrics.YearsRemaining = floatOrZero(val)
			case "forward_citations":
				rec.Metrics.ForwardCitations = float64(intOrZero(val))
			case "competitor_citations":
				rec.Metrics.CompetitorCitations = float64(intOrZero(val))
			case "competitor_count":
				rec.Metrics.CompetitorCount = float64(intOrZero(val))
			default:
				if strings.HasPrefix(col, scorePrefix) {
					rec.Scores[strings.TrimPrefix(col, scorePrefix)] = floatOrZero(val)
					continue
				}
				if field, ok := ratingColumns[col]; ok {
					if v, present := parseFloat(val); present {
						rec.Metrics.SetRating(field, v)
					}
				}
			}
		}

		if rec.PatentID == "" {
			continue
		}
		ex.Records[rec.PatentID] = rec
	}

	return ex, nil
}
