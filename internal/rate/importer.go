package rate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/wpo70/RateEdge/internal/domain"
)

// RowError reports one rejected CSV row; the surrounding import carries
// on with the remaining rows.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

const defaultFloatingRate = "6M"

// RateValidator is the slice of validation the importer needs.
type RateValidator interface {
	ValidateNewRate(rate domain.SwapRate) error
}

// ParseCSV reads observations from a CSV stream with columns
// date,currency,tenor,floating_rate,rate (floating_rate optional,
// header row optional). Dates are YYYY-MM-DD, rates are fractions of 1.
// Malformed rows are reported per line, not fatal.
func ParseCSV(r io.Reader, validator RateValidator) ([]domain.SwapRate, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		rates  []domain.SwapRate
		errs   []RowError
		line   int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line++

		if line == 1 && isHeaderRow(record) {
			continue
		}

		rate, rowErr := parseRow(record, validator)
		if rowErr != "" {
			errs = append(errs, RowError{Line: line, Reason: rowErr})
			continue
		}
		rates = append(rates, rate)
	}

	return rates, errs, nil
}

func isHeaderRow(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "date")
}

func parseRow(record []string, validator RateValidator) (domain.SwapRate, string) {
	if len(record) < 4 {
		return domain.SwapRate{}, "expected at least 4 columns: date,currency,tenor,rate"
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
	if err != nil {
		return domain.SwapRate{}, fmt.Sprintf("invalid date %q", record[0])
	}

	currency := strings.ToUpper(strings.TrimSpace(record[1]))
	tenor := strings.ToUpper(strings.TrimSpace(record[2]))

	// 4-column rows omit floating_rate, 5-column rows carry it.
	floating := defaultFloatingRate
	rateField := record[3]
	if len(record) >= 5 {
		floating = strings.TrimSpace(record[3])
		rateField = record[4]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(rateField), 64)
	if err != nil {
		return domain.SwapRate{}, fmt.Sprintf("invalid rate %q", rateField)
	}

	rate := domain.SwapRate{
		Date:         date,
		Currency:     currency,
		Tenor:        tenor,
		FloatingRate: floating,
		Rate:         value,
	}
	if err = validator.ValidateNewRate(rate); err != nil {
		return domain.SwapRate{}, err.Error()
	}
	return rate, ""
}
