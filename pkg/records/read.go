package records

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/heatsvg/pkg/errors"
)

// Record is one input row: a field name to value mapping. Values read from
// CSV are strings; values read from JSON are json.Number, string, bool,
// nested maps or slices.
type Record map[string]any

// Format identifies an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

// FormatFromPath infers the input format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input extension %q (must be .json, .csv or .tsv)", ext)
	}
}

// Read decodes records from r in the given format.
func Read(r io.Reader, format Format) ([]Record, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return ReadCSV(r, ',')
	case FormatTSV:
		return ReadCSV(r, '\t')
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
	}
}

// ReadFile reads the records in the file at path, choosing the decoder from
// the extension.
func ReadFile(path string) ([]Record, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ReadJSON decodes either a top-level array of objects or an object with a
// "records" array:
//
//	[{"x": 1, "y": 2}, ...]
//	{"records": [{"x": 1, "y": 2}, ...]}
//
// Numbers are kept as json.Number so large integers survive unchanged.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty JSON input")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if data[0] == '[' {
		var recs []Record
		if err := dec.Decode(&recs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode records")
		}
		return recs, nil
	}

	var wrapped struct {
		Records []Record `json:"records"`
	}
	if err := dec.Decode(&wrapped); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode records")
	}
	if wrapped.Records == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, `JSON object has no "records" array`)
	}
	return wrapped.Records, nil
}

// ReadCSV decodes delimited text whose first row names the fields. Every
// value is kept as a string; blank lines are skipped. ReadCSV does not close r.
func ReadCSV(r io.Reader, comma rune) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty CSV input")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read header")
	}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var recs []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read row %d", len(recs)+2)
		}
		rec := make(Record, len(names))
		for i, v := range row {
			rec[names[i]] = v
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
