package records

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/heatsvg/pkg/errors"
	"github.com/matzehuels/heatsvg/pkg/heatmap"
)

// Fields names the record fields that hold a point's coordinates and weight.
// Names may use dots to reach into nested JSON objects ("pos.lat").
type Fields struct {
	X             string   `toml:"x" json:"x"`
	Y             string   `toml:"y" json:"y"`
	Weight        string   `toml:"weight" json:"weight,omitempty"`
	DefaultWeight *float64 `toml:"default_weight" json:"default_weight,omitempty"`
}

// DefaultFields reads "x", "y" and "weight", with weight 1 for records that
// lack one.
func DefaultFields() Fields {
	return Fields{X: "x", Y: "y", Weight: "weight"}
}

// MissingWeight is the weight given to records without a weight value:
// DefaultWeight, or 1 when it is nil. An explicit 0 is kept.
func (f Fields) MissingWeight() float64 {
	if f.DefaultWeight == nil {
		return 1
	}
	return *f.DefaultWeight
}

// Validate checks the field names. An empty Weight means every point gets
// [Fields.MissingWeight].
func (f Fields) Validate() error {
	if err := errors.ValidateFieldName(f.X); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidField, err, "x field")
	}
	if err := errors.ValidateFieldName(f.Y); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidField, err, "y field")
	}
	if f.Weight != "" {
		if err := errors.ValidateFieldName(f.Weight); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidField, err, "weight field")
		}
	}
	return nil
}

// Map converts r to a point. Missing or unparseable coordinates become 0; a
// missing weight becomes [Fields.MissingWeight] and an unparseable one 0. Use [Fields.Check]
// to reject such records up front.
func (f Fields) Map(r Record) heatmap.Point {
	x, _ := Number(Lookup(r, f.X))
	y, _ := Number(Lookup(r, f.Y))
	w := f.MissingWeight()
	if f.Weight != "" {
		if v := Lookup(r, f.Weight); v != nil {
			w, _ = Number(v)
		}
	}
	return heatmap.Point{X: x, Y: y, Weight: w}
}

// Check reports the first record whose coordinates are missing or not finite
// numbers, or whose weight is present but not a finite number.
func (f Fields) Check(recs []Record) error {
	for i, r := range recs {
		for _, name := range []string{f.X, f.Y} {
			v := Lookup(r, name)
			if v == nil {
				return errors.New(errors.ErrCodeInvalidRecord, "record %d: missing field %q", i, name)
			}
			if _, ok := Number(v); !ok {
				return errors.New(errors.ErrCodeInvalidRecord, "record %d: field %q is not a number: %v", i, name, v)
			}
		}
		if f.Weight == "" {
			continue
		}
		if v := Lookup(r, f.Weight); v != nil {
			if _, ok := Number(v); !ok {
				return errors.New(errors.ErrCodeInvalidRecord, "record %d: field %q is not a number: %v", i, f.Weight, v)
			}
		}
	}
	return nil
}

// Mapper returns f.Map as a function, ready for heatmap.New.
func (f Fields) Mapper() func(Record) heatmap.Point { return f.Map }

// Lookup returns the value at a dotted path, or nil. An exact key match wins
// over path traversal so CSV headers containing dots still resolve.
func Lookup(r Record, path string) any {
	if v, ok := r[path]; ok {
		return v
	}
	var cur any = map[string]any(r)
	for part := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		if cur, ok = m[part]; !ok {
			return nil
		}
	}
	return cur
}

// Number converts a decoded value to a finite float64. It accepts Go numeric
// types, json.Number and numeric strings (surrounding space allowed). Empty
// strings are not numbers.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(n), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
