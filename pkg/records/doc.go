// Package records reads heatmap input rows and maps them to points.
//
// Input is either JSON (an array of objects, or an object with a "records"
// array) or delimited text with a header row. [ReadFile] picks the decoder
// from the file extension.
//
// [Fields] names which record fields carry the coordinates and weight and
// provides the mapping function handed to heatmap.New:
//
//	recs, err := records.ReadFile("checkins.csv")
//	if err != nil {
//	    return err
//	}
//	fields := records.Fields{X: "lon", Y: "lat", Weight: "count"}
//	if err := fields.Check(recs); err != nil {
//	    return err
//	}
//	cfg := heatmap.New(fields.Mapper(), gradient.Sunrise)
package records
