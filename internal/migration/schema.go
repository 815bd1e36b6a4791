package migration

import (
	"context"
	"database/sql"
	"fmt"
	"sisregip-service/internal/pkg/constvars"
	"sisregip-service/internal/pkg/queries"
)

type Schema struct {
	Driver string  `json:"driver" yaml:"driver"`
	Tables []Table `json:"tables" yaml:"tables"`
}

type Table struct {
	Name        string       `json:"name" yaml:"name"`
	Columns     []Column     `json:"columns" yaml:"columns"`
	ForeignKeys []ForeignKey `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
	Indexes     []Index      `json:"indexes,omitempty" yaml:"indexes,omitempty"`
}

type Column struct {
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	NotNull    bool   `json:"not_null" yaml:"not_null"`
	Default    string `json:"default,omitempty" yaml:"default,omitempty"`
	PrimaryKey bool   `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
}

type ForeignKey struct {
	Column    string `json:"column" yaml:"column"`
	RefTable  string `json:"ref_table" yaml:"ref_table"`
	RefColumn string `json:"ref_column" yaml:"ref_column"`
}

type Index struct {
	Name    string   `json:"name" yaml:"name"`
	Unique  bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// DumpSchema describes the application tables as the live database sees them,
// skipping the migration bookkeeping table.
func DumpSchema(ctx context.Context, db *sql.DB, driver string) (*Schema, error) {
	var listTables string
	switch driver {
	case constvars.DatabaseDriverPostgres:
		listTables = queries.PostgresListTables
	case constvars.DatabaseDriverSQLite:
		listTables = queries.SQLiteListTables
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	names, err := queryStrings(ctx, db, listTables)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	schema := &Schema{Driver: driver, Tables: make([]Table, 0, len(names))}
	for _, name := range names {
		var table *Table
		if driver == constvars.DatabaseDriverPostgres {
			table, err = describePostgresTable(ctx, db, name)
		} else {
			table, err = describeSQLiteTable(ctx, db, name)
		}
		if err != nil {
			return nil, fmt.Errorf("describe table %s: %w", name, err)
		}
		schema.Tables = append(schema.Tables, *table)
	}
	return schema, nil
}

func describePostgresTable(ctx context.Context, db *sql.DB, name string) (*Table, error) {
	table := &Table{Name: name}

	rows, err := db.QueryContext(ctx, queries.PostgresListColumns, name)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var column Column
		if err := rows.Scan(&column.Name, &column.Type, &column.NotNull, &column.Default); err != nil {
			rows.Close()
			return nil, err
		}
		table.Columns = append(table.Columns, column)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, queries.PostgresListConstraints, name)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var constraintType, column, refTable, refColumn string
		if err := rows.Scan(&constraintType, &column, &refTable, &refColumn); err != nil {
			rows.Close()
			return nil, err
		}
		switch constraintType {
		case "PRIMARY KEY":
			for i := range table.Columns {
				if table.Columns[i].Name == column {
					table.Columns[i].PrimaryKey = true
				}
			}
		case "FOREIGN KEY":
			table.ForeignKeys = append(table.ForeignKeys, ForeignKey{Column: column, RefTable: refTable, RefColumn: refColumn})
		}
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	indexes, err := queryStrings(ctx, db, queries.PostgresListIndexes, name)
	if err != nil {
		return nil, err
	}
	for _, index := range indexes {
		table.Indexes = append(table.Indexes, Index{Name: index})
	}
	return table, nil
}

func describeSQLiteTable(ctx context.Context, db *sql.DB, name string) (*Table, error) {
	table := &Table{Name: name}
	driver := constvars.DatabaseDriverSQLite

	rows, err := db.QueryContext(ctx, queries.Rebind(driver, queries.SQLiteListColumns), name)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var column Column
		if err := rows.Scan(&column.Name, &column.Type, &column.NotNull, &column.Default, &column.PrimaryKey); err != nil {
			rows.Close()
			return nil, err
		}
		table.Columns = append(table.Columns, column)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, queries.Rebind(driver, queries.SQLiteListForeignKeys), name)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Column, &fk.RefTable, &fk.RefColumn); err != nil {
			rows.Close()
			return nil, err
		}
		table.ForeignKeys = append(table.ForeignKeys, fk)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, queries.Rebind(driver, queries.SQLiteListIndexes), name)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var index Index
		if err := rows.Scan(&index.Name, &index.Unique); err != nil {
			rows.Close()
			return nil, err
		}
		table.Indexes = append(table.Indexes, index)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	for i := range table.Indexes {
		columns, err := queryStrings(ctx, db, queries.Rebind(driver, queries.SQLiteListIndexColumns), table.Indexes[i].Name)
		if err != nil {
			return nil, err
		}
		table.Indexes[i].Columns = columns
	}
	return table, nil
}

func queryStrings(ctx context.Context, db *sql.DB, query string, args ...interface{}) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			rows.Close()
			return nil, err
		}
		values = append(values, value)
	}
	return values, closeRows(rows)
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}
