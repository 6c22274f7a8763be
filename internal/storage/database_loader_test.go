package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oscardepp/SimpleSQL/internal/domain/schema"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeMeta(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, MetaFile), []byte(content), 0644); err != nil {
		t.Fatalf("write meta: %v", err)
	}
	return dir
}

func TestLoadDatabase(t *testing.T) {
	dir := writeMeta(t, `{
		"name": "company",
		"tables": [
			{"name": "Employees", "record_size": 40, "columns": [
				{"name": "id", "type": "INTEGER"},
				{"name": "name", "type": "STRING"},
				{"name": "salary", "type": "REAL"}
			]},
			{"name": "Departments", "record_size": 24, "columns": [
				{"name": "code", "type": "int"},
				{"name": "title", "type": "text"}
			]}
		]
	}`)

	db, err := LoadDatabase(dir, discardLogger())
	if err != nil {
		t.Fatalf("LoadDatabase: %v", err)
	}

	if db.Name != "company" || db.Path != dir {
		t.Errorf("unexpected database %s at %s", db.Name, db.Path)
	}
	if len(db.Tables) != 2 || db.Tables[0].Name != "Employees" {
		t.Fatalf("expected catalog order to be kept, got %d tables", len(db.Tables))
	}

	emp := db.Tables[0]
	if emp.RecordSize != 40 {
		t.Errorf("expected record size 40, got %d", emp.RecordSize)
	}
	wantTypes := []schema.ColumnType{schema.ColumnTypeInteger, schema.ColumnTypeString, schema.ColumnTypeReal}
	for i, col := range emp.Columns {
		if col.Type != wantTypes[i] {
			t.Errorf("column %s: expected %s, got %s", col.Name, wantTypes[i], col.Type)
		}
		if col.Position != i+1 {
			t.Errorf("column %s: expected position %d, got %d", col.Name, i+1, col.Position)
		}
	}

	dept, ok := db.FindTable("departments")
	if !ok || dept.Columns[0].Type != schema.ColumnTypeInteger {
		t.Errorf("expected aliases to resolve, got %+v", dept)
	}
}

func TestLoadDatabase_DefaultsNameToDirectory(t *testing.T) {
	dir := writeMeta(t, `{"tables": [{"name": "t", "columns": [{"name": "a", "type": "INTEGER"}]}]}`)

	db, err := LoadDatabase(dir, discardLogger())
	if err != nil {
		t.Fatalf("LoadDatabase: %v", err)
	}
	if db.Name != filepath.Base(dir) {
		t.Errorf("expected name %s, got %s", filepath.Base(dir), db.Name)
	}
}

func TestLoadDatabase_Errors(t *testing.T) {
	tests := []struct {
		name    string
		meta    string
		wantErr string
	}{
		{"bad json", `{"tables": [`, "parse"},
		{"unknown type", `{"tables": [{"name": "t", "columns": [{"name": "a", "type": "BLOB"}]}]}`, "unknown column type"},
		{"duplicate table", `{"tables": [
			{"name": "t", "columns": [{"name": "a", "type": "INTEGER"}]},
			{"name": "T", "columns": [{"name": "a", "type": "INTEGER"}]}]}`, "duplicate table"},
		{"duplicate column", `{"tables": [{"name": "t", "columns": [
			{"name": "a", "type": "INTEGER"}, {"name": "A", "type": "REAL"}]}]}`, "duplicate column"},
		{"no columns", `{"tables": [{"name": "t", "columns": []}]}`, "no columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeMeta(t, tt.meta)
			_, err := LoadDatabase(dir, discardLogger())
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected %q in %v", tt.wantErr, err)
			}
		})
	}

	if _, err := LoadDatabase(t.TempDir(), discardLogger()); err == nil {
		t.Error("expected an error when meta.json is missing")
	}
}
