package record

type ColumnType string

const (
	TypeInteger ColumnType = "INTEGER"
	TypeText    ColumnType = "TEXT"
	TypeFloat   ColumnType = "FLOAT"
	TypeBoolean ColumnType = "BOOLEAN"
	TypeBlob    ColumnType = "BLOB"
)

type Column struct {
	Name       string     `json:"name"`
	Type       ColumnType `json:"type"`
	Nullable   bool       `json:"nullable"`
	PrimaryKey bool       `json:"primary_key"`
}

// Schema is the ordered column list of one table. Immutable once created.
type Schema struct {
	Cols []Column `json:"cols"`
}

func (s Schema) NumCols() int { return len(s.Cols) }

// Col looks a column up by name.
func (s Schema) Col(name string) (Column, bool) {
	for _, c := range s.Cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColNames returns the declared column order.
func (s Schema) ColNames() []string {
	out := make([]string, len(s.Cols))
	for i, c := range s.Cols {
		out[i] = c.Name
	}
	return out
}

// PrimaryKey returns the primary-key column name, or "" if none declared.
func (s Schema) PrimaryKey() string {
	for _, c := range s.Cols {
		if c.PrimaryKey {
			return c.Name
		}
	}
	return ""
}
