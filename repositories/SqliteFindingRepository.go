package repositories

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/reaandrew/boostfindings/core"
	log "github.com/sirupsen/logrus"
)

// SqliteFindingRepository implements core.FindingRepository using SQLite
type SqliteFindingRepository struct {
	db     *sql.DB
	dbPath string
}

// NewSqliteFindingRepository creates a new SQLite-backed repository.
// dbPath is the filename/path for the SQLite database, or ":memory:".
func NewSqliteFindingRepository(dbPath string) (core.FindingRepository, error) {
	db, err := InitializeSQLiteDB(dbPath)
	if err != nil {
		return nil, err
	}

	return &SqliteFindingRepository{db: db, dbPath: dbPath}, nil
}

// Store inserts the rows in a single transaction, keeping retrieval order in the id column.
func (r *SqliteFindingRepository) Store(rows []core.FlatRow) error {
	return InsertRows(r.db, rows)
}

func (r *SqliteFindingRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM Findings").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records in Findings table: %w", err)
	}
	return count, nil
}

// Query runs a summary query and returns its rows keyed by column name.
func (r *SqliteFindingRepository) Query(query core.SqlQuery) (core.QueryResult, error) {
	result := core.QueryResult{Name: query.Name}

	rows, err := r.db.Query(query.Query)
	if err != nil {
		return result, fmt.Errorf("failed to execute query '%s': %w", query.Name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return result, fmt.Errorf("failed to retrieve columns for query '%s': %w", query.Name, err)
	}
	result.Columns = columns

	for rows.Next() {
		columnValues := make([]interface{}, len(columns))
		columnPointers := make([]interface{}, len(columns))
		for i := range columnValues {
			columnPointers[i] = &columnValues[i]
		}

		if err := rows.Scan(columnPointers...); err != nil {
			return result, fmt.Errorf("failed to scan row for query '%s': %w", query.Name, err)
		}

		rowData := make(map[string]interface{}, len(columns))
		for i, colName := range columns {
			if b, ok := columnValues[i].([]byte); ok {
				rowData[colName] = string(b)
			} else {
				rowData[colName] = columnValues[i]
			}
		}
		result.Rows = append(result.Rows, rowData)
	}

	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("row iteration error for query '%s': %w", query.Name, err)
	}

	return result, nil
}

// Close closes the database and removes the file it was created in.
func (r *SqliteFindingRepository) Close() error {
	if err := r.db.Close(); err != nil {
		return err
	}
	if r.dbPath == ":memory:" {
		return nil
	}
	return DeleteDatabaseFileIfExists(r.dbPath)
}

// InitializeSQLiteDB opens (or recreates) the SQLite DB and applies the Findings schema.
func InitializeSQLiteDB(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if err := DeleteDatabaseFileIfExists(dbPath); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// a second pooled connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	// One-shot load; durability does not matter.
	_, _ = db.Exec("PRAGMA journal_mode = WAL;")
	_, _ = db.Exec("PRAGMA synchronous = OFF;")

	createStmt := `CREATE TABLE IF NOT EXISTS Findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		findingId TEXT,
		isViolation INTEGER,
		projectName TEXT,
		cursor TEXT
	);`

	if _, err := db.Exec(createStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create findings table: %w", err)
	}

	return db, nil
}

func InsertRows(db *sql.DB, rows []core.FlatRow) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO Findings (timestamp, findingId, isViolation, projectName, cursor)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, execErr := stmt.Exec(row.Timestamp, row.FindingId, row.IsViolation, row.ProjectName, row.Cursor)
		if execErr != nil {
			return fmt.Errorf("failed to insert finding '%s': %w", row.FindingId, execErr)
		}
	}

	log.Debugf("Inserted %d rows into Findings", len(rows))
	return nil
}

func DeleteDatabaseFileIfExists(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to check if file exists at path %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("path %s is a directory, not a file", path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete database file at path %s: %w", path, err)
	}

	// WAL mode leaves sidecar files next to the database.
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(path + suffix)
	}
	return nil
}
