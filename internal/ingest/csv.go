package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/merli/hearttrack-backend-go/internal/models"
)

// MissingColumnError reports a required input column that is absent from
// the upload. It is raised after reading the header and before any row is
// parsed; the core never sees a table without its required columns.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// Sensor export column names. Matching is case-insensitive and tolerant of
// surrounding whitespace, so "ECG" and " ecg" both resolve.
const (
	columnTime = "time"
	columnECG  = "ecg"
	columnAccX = "accx"
	columnAccY = "accy"
	columnAccZ = "accz"
)

// ParseResult is the outcome of parsing one sensor export.
type ParseResult struct {
	Samples  []models.Sample
	HasAccel bool
}

// ParseCSV reads a sensor export (comma-separated, one header row) into an
// ordered sample slice. Required columns are the tick counter and the ECG
// amplitude; the three acceleration channels are optional and either all
// present or ignored. Rows must be chronologically ordered: a tick counter
// that decreases is rejected here because the analysis core never re-sorts.
func ParseCSV(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Tolerate rows with missing trailing optional fields.
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &MissingColumnError{Column: columnTime}
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	headerMap := make(map[string]int)
	for i, h := range headers {
		headerMap[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, required := range []string{columnTime, columnECG} {
		if _, ok := headerMap[required]; !ok {
			return nil, &MissingColumnError{Column: required}
		}
	}

	_, hasX := headerMap[columnAccX]
	_, hasY := headerMap[columnAccY]
	_, hasZ := headerMap[columnAccZ]
	hasAccel := hasX && hasY && hasZ

	get := func(record []string, col string) string {
		if idx, ok := headerMap[col]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	result := &ParseResult{HasAccel: hasAccel}
	line := 1 // header

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv read error at line %d: %w", line, err)
		}

		tick, err := strconv.ParseInt(get(record, columnTime), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid time value: %w", line, err)
		}

		ecgVal, err := strconv.ParseFloat(get(record, columnECG), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid ecg value: %w", line, err)
		}

		if n := len(result.Samples); n > 0 && tick < result.Samples[n-1].TimeTick {
			return nil, fmt.Errorf("line %d: time counter decreased (%d after %d)",
				line, tick, result.Samples[n-1].TimeTick)
		}

		sample := models.Sample{
			Seq:      int64(len(result.Samples)),
			TimeTick: tick,
			ECG:      ecgVal,
		}

		if hasAccel {
			if sample.AccX, err = strconv.ParseFloat(get(record, columnAccX), 64); err != nil {
				return nil, fmt.Errorf("line %d: invalid accX value: %w", line, err)
			}
			if sample.AccY, err = strconv.ParseFloat(get(record, columnAccY), 64); err != nil {
				return nil, fmt.Errorf("line %d: invalid accY value: %w", line, err)
			}
			if sample.AccZ, err = strconv.ParseFloat(get(record, columnAccZ), 64); err != nil {
				return nil, fmt.Errorf("line %d: invalid accZ value: %w", line, err)
			}
		}

		result.Samples = append(result.Samples, sample)
	}

	return result, nil
}
