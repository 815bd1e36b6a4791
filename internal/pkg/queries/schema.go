package queries

const (
	PostgresListTables = `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE' AND table_name <> 'gorp_migrations'
		ORDER BY table_name`

	PostgresListColumns = `
		SELECT column_name, data_type, is_nullable = 'NO', COALESCE(column_default, '')
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position`

	PostgresListConstraints = `
		SELECT tc.constraint_type, kcu.column_name, COALESCE(ccu.table_name, ''), COALESCE(ccu.column_name, '')
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
		LEFT JOIN information_schema.constraint_column_usage ccu
			ON tc.constraint_type = 'FOREIGN KEY' AND tc.constraint_name = ccu.constraint_name
		WHERE tc.table_schema = 'public' AND tc.table_name = $1`

	PostgresListIndexes = "SELECT indexname FROM pg_indexes WHERE schemaname = 'public' AND tablename = $1 ORDER BY indexname"

	SQLiteListTables = `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name <> 'gorp_migrations'
		ORDER BY name`

	SQLiteListColumns = "SELECT name, type, \"notnull\" = 1, COALESCE(dflt_value, ''), pk > 0 FROM pragma_table_info($1) ORDER BY cid"

	SQLiteListForeignKeys = "SELECT \"from\", \"table\", \"to\" FROM pragma_foreign_key_list($1)"

	SQLiteListIndexes = "SELECT name, \"unique\" = 1 FROM pragma_index_list($1) ORDER BY name"

	SQLiteListIndexColumns = "SELECT name FROM pragma_index_info($1)"
)
