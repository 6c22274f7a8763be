package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
	"github.com/segmentio/encoding/json"
)

// MetaFile is the catalog file name inside a database directory
const MetaFile = "meta.json"

// LoadDatabase loads the catalog of the database in dbPath.
// Table data is not read here; the executor streams it per query.
func LoadDatabase(dbPath string, logger *slog.Logger) (*schema.Database, error) {
	metaPath := filepath.Join(dbPath, MetaFile)

	raw, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read database meta: %w", err)
	}

	var meta DatabaseMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse database meta: %w", err)
	}

	name := meta.Name
	if name == "" {
		name = filepath.Base(dbPath)
	}

	db := &schema.Database{
		Name:   name,
		Path:   dbPath,
		Tables: make([]*schema.Table, 0, len(meta.Tables)),
	}

	for _, tm := range meta.Tables {
		if _, exists := db.FindTable(tm.Name); exists {
			return nil, fmt.Errorf("duplicate table %q in %s", tm.Name, metaPath)
		}

		table, err := buildTable(tm)
		if err != nil {
			return nil, fmt.Errorf("failed to load table %s: %w", tm.Name, err)
		}
		db.Tables = append(db.Tables, table)

		logger.Debug("table loaded",
			slog.String("table", table.Name),
			slog.Int("columns", len(table.Columns)),
			slog.Int("record_size", table.RecordSize),
		)
	}

	logger.Info("Database loaded successfully",
		slog.String("name", db.Name),
		slog.String("path", dbPath),
		slog.Int("table_count", len(db.Tables)),
	)

	return db, nil
}

func buildTable(tm TableMeta) (*schema.Table, error) {
	if tm.Name == "" {
		return nil, fmt.Errorf("table has no name")
	}
	if len(tm.Columns) == 0 {
		return nil, fmt.Errorf("table has no columns")
	}
	if tm.RecordSize < 0 {
		return nil, fmt.Errorf("negative record size %d", tm.RecordSize)
	}

	table := &schema.Table{
		Name:       tm.Name,
		RecordSize: tm.RecordSize,
		Columns:    make([]schema.Column, 0, len(tm.Columns)),
	}

	for i, c := range tm.Columns {
		typ, err := schema.ParseColumnType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c.Name, err)
		}
		if _, exists := table.FindColumn(c.Name); exists {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		table.Columns = append(table.Columns, schema.Column{
			Name:     c.Name,
			Type:     typ,
			Position: i + 1,
		})
	}

	return table, nil
}
