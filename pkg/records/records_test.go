package records

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/heatsvg/pkg/errors"
	"github.com/matzehuels/heatsvg/pkg/heatmap"
)

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"array", `[{"x": 1, "y": 2}, {"x": 3, "y": 4}]`, 2, false},
		{"wrapped", `{"records": [{"x": 1, "y": 2}]}`, 1, false},
		{"empty array", `[]`, 0, false},
		{"padded", "\n  [{\"x\": 1}]  \n", 1, false},
		{"no records key", `{"points": []}`, 0, true},
		{"malformed", `[{"x": }]`, 0, true},
		{"empty", ``, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := ReadJSON(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("code = %v, want INVALID_INPUT", errors.GetCode(err))
				}
				return
			}
			if len(recs) != tt.want {
				t.Errorf("got %d records, want %d", len(recs), tt.want)
			}
		})
	}
}

func TestReadJSONKeepsNumbers(t *testing.T) {
	recs, err := ReadJSON(strings.NewReader(`[{"id": 9007199254740993}]`))
	if err != nil {
		t.Fatal(err)
	}
	n, ok := recs[0]["id"].(json.Number)
	if !ok || n.String() != "9007199254740993" {
		t.Errorf("id = %#v", recs[0]["id"])
	}
}

func TestReadCSV(t *testing.T) {
	input := "\ufeffx, y,weight\n1,2,3\n\n4, 5,\n"
	recs, err := ReadCSV(strings.NewReader(input), ',')
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0]["x"] != "1" || recs[0]["y"] != "2" || recs[0]["weight"] != "3" {
		t.Errorf("row 0 = %v", recs[0])
	}
	if recs[1]["y"] != "5" || recs[1]["weight"] != "" {
		t.Errorf("row 1 = %v", recs[1])
	}
}

func TestReadCSVErrors(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader(""), ','); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty input error = %v", err)
	}
	if _, err := ReadCSV(strings.NewReader("x,y\n1,2,3\n"), ','); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ragged row error = %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name string
		path string
		want int
		code errors.Code
	}{
		{"json", write("a.json", `[{"x":1,"y":1}]`), 1, ""},
		{"csv", write("a.CSV", "x,y\n1,1\n2,2\n"), 2, ""},
		{"tsv", write("a.tsv", "x\ty\n1\t1\n"), 1, ""},
		{"unknown ext", write("a.txt", ""), 0, errors.ErrCodeInvalidFormat},
		{"missing", filepath.Join(dir, "missing.json"), 0, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := ReadFile(tt.path)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(recs) != tt.want {
				t.Errorf("got %d records, want %d", len(recs), tt.want)
			}
		})
	}
}

func TestFieldsMap(t *testing.T) {
	f := DefaultFields()
	tests := []struct {
		name string
		rec  Record
		want heatmap.Point
	}{
		{"floats", Record{"x": 1.5, "y": -2.0, "weight": 3.0}, heatmap.Point{X: 1.5, Y: -2, Weight: 3}},
		{"strings", Record{"x": " 4", "y": "5", "weight": "0.5"}, heatmap.Point{X: 4, Y: 5, Weight: 0.5}},
		{"json numbers", Record{"x": json.Number("7"), "y": json.Number("8")}, heatmap.Point{X: 7, Y: 8, Weight: 1}},
		{"missing weight", Record{"x": 1, "y": 2}, heatmap.Point{X: 1, Y: 2, Weight: 1}},
		{"bad weight", Record{"x": 1, "y": 2, "weight": "heavy"}, heatmap.Point{X: 1, Y: 2, Weight: 0}},
		{"missing coords", Record{}, heatmap.Point{Weight: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Map(tt.rec); got != tt.want {
				t.Errorf("Map = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFieldsMissingWeight(t *testing.T) {
	zero, half := 0.0, 0.5
	rec := Record{"x": 1, "y": 2}
	tests := []struct {
		name string
		def  *float64
		want float64
	}{
		{"unset", nil, 1},
		{"zero", &zero, 0},
		{"half", &half, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Fields{X: "x", Y: "y", Weight: "weight", DefaultWeight: tt.def}
			if got := f.MissingWeight(); got != tt.want {
				t.Errorf("MissingWeight = %v, want %v", got, tt.want)
			}
			if got := f.Map(rec).Weight; got != tt.want {
				t.Errorf("Map weight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldsNested(t *testing.T) {
	recs, err := ReadJSON(strings.NewReader(`[{"pos": {"lon": 13.4, "lat": 52.5}, "n": 2, "a.b": 9}]`))
	if err != nil {
		t.Fatal(err)
	}
	f := Fields{X: "pos.lon", Y: "pos.lat", Weight: "n"}
	if got := f.Map(recs[0]); got != (heatmap.Point{X: 13.4, Y: 52.5, Weight: 2}) {
		t.Errorf("Map = %+v", got)
	}
	if v := Lookup(recs[0], "a.b"); v != json.Number("9") {
		t.Errorf("Lookup(a.b) = %#v", v)
	}
	if v := Lookup(recs[0], "pos.alt"); v != nil {
		t.Errorf("Lookup(pos.alt) = %#v", v)
	}
}

func TestFieldsCheck(t *testing.T) {
	f := DefaultFields()
	tests := []struct {
		name    string
		recs    []Record
		wantErr bool
	}{
		{"ok", []Record{{"x": 1, "y": 2}, {"x": "3", "y": "4", "weight": "2"}}, false},
		{"missing y", []Record{{"x": 1, "y": 2}, {"x": 1}}, true},
		{"text x", []Record{{"x": "left", "y": 2}}, true},
		{"empty string", []Record{{"x": "", "y": 2}}, true},
		{"bad weight", []Record{{"x": 1, "y": 2, "weight": "NaN"}}, true},
		{"none", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.Check(tt.recs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidRecord) {
				t.Errorf("code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestFieldsValidate(t *testing.T) {
	if err := DefaultFields().Validate(); err != nil {
		t.Errorf("default fields: %v", err)
	}
	if err := (Fields{X: "x", Y: "y"}).Validate(); err != nil {
		t.Errorf("no weight field: %v", err)
	}
	if err := (Fields{Y: "y"}).Validate(); !errors.Is(err, errors.ErrCodeInvalidField) {
		t.Errorf("empty x: %v", err)
	}
}
