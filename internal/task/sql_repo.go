package task

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLRepo stores tasks in a SQL table through database/sql. It speaks
// sqlite3 by default and postgres when configured; queries are written
// with ? placeholders and rebound for postgres.
type SQLRepo struct {
	db     *sql.DB
	driver string
}

func NewSQLRepo(db *sql.DB, driver string) *SQLRepo {
	return &SQLRepo{db: db, driver: driver}
}

// CreateSchema ensures the tasks table exists. Column names are the wire
// vocabulary on purpose so rows scan straight into the Task struct.
func (r *SQLRepo) CreateSchema(ctx context.Context) error {
	idCol := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if r.driver == DriverPostgres {
		idCol = "SERIAL PRIMARY KEY"
	}
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS tasks (
		id %s,
		titulo TEXT NOT NULL,
		descripcion TEXT,
		status TEXT DEFAULT '%s',
		fechaCreacion TEXT,
		fechaActualizacion TEXT
	)`, idCol, StatusPending)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (r *SQLRepo) Insert(ctx context.Context, t Task) (int64, error) {
	query := r.rebind(`INSERT INTO tasks (titulo, descripcion, status, fechaCreacion, fechaActualizacion)
		VALUES (?, ?, ?, ?, ?)`)
	args := []any{t.Title, t.Description, t.Status, t.CreatedAt, t.UpdatedAt}

	// lib/pq does not implement LastInsertId, so postgres goes through
	// RETURNING instead.
	if r.driver == DriverPostgres {
		var id int64
		if err := r.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert task: %w", err)
		}
		return id, nil
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert task id: %w", err)
	}
	return id, nil
}

func (r *SQLRepo) List(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, titulo, descripcion, status, fechaCreacion, fechaActualizacion FROM tasks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLRepo) UpdateStatus(ctx context.Context, id int64, status, updatedAt string) (int64, error) {
	query := r.rebind(`UPDATE tasks SET status = ?, fechaActualizacion = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, status, updatedAt, id)
	if err != nil {
		return 0, fmt.Errorf("update task %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update task %d: %w", id, err)
	}
	return affected, nil
}

func (r *SQLRepo) Delete(ctx context.Context, id int64) (int64, error) {
	query := r.rebind(`DELETE FROM tasks WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete task %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete task %d: %w", id, err)
	}
	return affected, nil
}

// rebind rewrites ? placeholders to $1..$N for postgres.
func (r *SQLRepo) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
