package record

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Row is one stored row: the synthetic row id plus column values.
// The id never changes across updates.
type Row struct {
	ID   string           `json:"_id"`
	Cols map[string]Value `json:"cols"`
}

func NewRow(id string) Row {
	return Row{ID: id, Cols: make(map[string]Value)}
}

// Get returns the value of a column. Absent columns read as NULL.
func (r Row) Get(col string) Value {
	v, ok := r.Cols[col]
	if !ok {
		return Null()
	}
	return v
}

// Has reports whether a column is present on the row.
func (r Row) Has(col string) bool {
	_, ok := r.Cols[col]
	return ok
}

// Clone returns a copy whose column map does not alias the original.
func (r Row) Clone() Row {
	out := Row{ID: r.ID, Cols: make(map[string]Value, len(r.Cols))}
	for k, v := range r.Cols {
		out.Cols[k] = v
	}
	return out
}

// EncodeRow serializes a row for storage.
func EncodeRow(r Row) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("record: encode row %s: %w", r.ID, err)
	}
	return b, nil
}

// DecodeRow deserializes a stored row.
func DecodeRow(data []byte) (Row, error) {
	var r Row
	if err := json.Unmarshal(data, &r); err != nil {
		return Row{}, fmt.Errorf("record: decode row: %w", err)
	}
	if r.Cols == nil {
		r.Cols = make(map[string]Value)
	}
	return r, nil
}
