package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
	"github.com/finconsgroup/zooadmin/internal/sandbox/store"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"

	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Single connection: sqlite allows one writer, and the pragma below
	// is per-connection.
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users           { return &usersRepo{db: s.db} }
func (s *Store) Animals() store.Animals       { return &animalsRepo{db: s.db} }
func (s *Store) Enclosures() store.Enclosures { return &enclosuresRepo{db: s.db} }
func (s *Store) Tickets() store.Tickets       { return &ticketsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// requireRowAffected maps a zero-row UPDATE or DELETE to ErrNotFound so
// handlers can answer 404 instead of silently succeeding.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullInt64Ptr(ni sql.NullInt64) *int64 {
	if ni.Valid {
		val := ni.Int64
		return &val
	}
	return nil
}

func mapOptionalInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func mapNullOperatorType(ns sql.NullString) *zoosdk.OperatorType {
	if ns.Valid {
		val := zoosdk.OperatorType(ns.String)
		return &val
	}
	return nil
}

func mapOptionalOperatorType(t *zoosdk.OperatorType) sql.NullString {
	if t == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: string(*t), Valid: true}
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u      domain.User
		role   string
		opType sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.LastName, &u.Username, &u.PasswordHash, &role, &opType)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = zoosdk.Role(role)
	u.OperatorType = mapNullOperatorType(opType)
	return u, nil
}
