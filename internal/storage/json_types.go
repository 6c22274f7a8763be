package storage

// DatabaseMeta is the content of <database dir>/meta.json
type DatabaseMeta struct {
	Name    string      `json:"name"`
	Version int         `json:"version,omitempty"`
	Tables  []TableMeta `json:"tables"`
}

type TableMeta struct {
	Name       string       `json:"name"`
	RecordSize int          `json:"record_size"`
	Columns    []ColumnMeta `json:"columns"`
}

type ColumnMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
