package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

// Store persists history records in SQLite using the same table layout
// as the messenger server.
type Store struct {
	db *sql.DB
}

// Filter selects a page of records. Nil bounds and empty strings are
// ignored.
type Filter struct {
	Offset   int
	Limit    int
	Start    *int64 // received_at >= Start
	End      *int64 // received_at <= End
	Statuses []bool
	Sender   string
	Content  string
	OrderBy  string // id, created_at or received_at
	Desc     bool
}

// NewStore creates a new history store at the given path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	// One connection: sqlite has a single writer, and ":memory:"
	// databases are per connection.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			message     TEXT NOT NULL DEFAULT '',
			err         TEXT NOT NULL DEFAULT '',
			req         TEXT NOT NULL DEFAULT '',
			resp        TEXT NOT NULL DEFAULT '',
			status      INTEGER NOT NULL DEFAULT 0,
			received_at INTEGER NOT NULL DEFAULT 0,
			created_at  INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_history_received_at ON history(received_at);
		CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating history table: %w", err)
	}
	return nil
}

// Add inserts a record and returns its id. A zero CreatedAt is set to
// the current time.
func (s *Store) Add(ctx context.Context, r Record) (int64, error) {
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO history (message, err, req, resp, status, received_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Message, r.Err, r.Req, r.Resp, r.Status, r.ReceivedAt, r.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting history: %w", err)
	}
	return result.LastInsertId()
}

// List returns one page of matching records and the total match count.
func (s *Store) List(ctx context.Context, f Filter) ([]Record, int, error) {
	where, args := f.where()

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		count   int
		records []Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		row := s.db.QueryRowContext(gctx, "SELECT COUNT(*) FROM history"+where, args...)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("counting history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		q := "SELECT id, message, err, req, resp, status, received_at, created_at FROM history" +
			where + " ORDER BY " + f.orderBy() + " LIMIT ? OFFSET ?"
		rows, err := s.db.QueryContext(gctx, q, append(append([]any{}, args...), limit, offset)...)
		if err != nil {
			return fmt.Errorf("listing history: %w", err)
		}
		defer rows.Close()
		records, err = scanRecords(rows)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, count, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return n, nil
}

// Clear removes all history records.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM history")
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (f Filter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Start != nil {
		conds = append(conds, "received_at >= ?")
		args = append(args, *f.Start)
	}
	if f.End != nil {
		conds = append(conds, "received_at <= ?")
		args = append(args, *f.End)
	}
	if len(f.Statuses) > 0 {
		marks := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			marks[i] = "?"
			args = append(args, st)
		}
		conds = append(conds, "status IN ("+strings.Join(marks, ",")+")")
	}
	for _, kv := range []struct{ key, val string }{{"sender", f.Sender}, {"content", f.Content}} {
		if kv.val == "" {
			continue
		}
		conds = append(conds, fmt.Sprintf(
			"(CASE WHEN json_valid(message) THEN json_extract(message, '$.%s') END) LIKE ?", kv.key))
		args = append(args, "%"+kv.val+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (f Filter) orderBy() string {
	col := FieldID
	switch f.OrderBy {
	case FieldCreatedAt, FieldReceivedAt:
		col = f.OrderBy
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	if col == FieldID {
		return "id " + dir
	}
	return col + " " + dir + ", id " + dir
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		err := rows.Scan(&r.ID, &r.Message, &r.Err, &r.Req, &r.Resp, &r.Status, &r.ReceivedAt, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
