package sqlite

import (
	"context"
	"database/sql"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
)

type enclosuresRepo struct {
	db *sql.DB
}

const enclosureColumns = `id, name, area, description, user_id`

func scanEnclosure(row interface{ Scan(...any) error }) (domain.Enclosure, error) {
	var (
		e      domain.Enclosure
		userID sql.NullInt64
	)
	err := row.Scan(&e.ID, &e.Name, &e.Area, &e.Description, &userID)
	if err != nil {
		return domain.Enclosure{}, mapNotFound(err)
	}
	e.UserID = mapNullInt64Ptr(userID)
	return e, nil
}

func (r *enclosuresRepo) GetByID(ctx context.Context, id int64) (domain.Enclosure, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+enclosureColumns+` FROM enclosures WHERE id = ?`, id)
	return scanEnclosure(row)
}

func (r *enclosuresRepo) List(ctx context.Context) ([]domain.Enclosure, error) {
	return r.query(ctx, `SELECT `+enclosureColumns+` FROM enclosures ORDER BY id`)
}

func (r *enclosuresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Enclosure, error) {
	return r.query(ctx,
		`SELECT `+enclosureColumns+` FROM enclosures WHERE user_id = ? ORDER BY id`, userID)
}

func (r *enclosuresRepo) query(ctx context.Context, q string, args ...any) ([]domain.Enclosure, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enclosures []domain.Enclosure
	for rows.Next() {
		e, err := scanEnclosure(rows)
		if err != nil {
			return nil, err
		}
		enclosures = append(enclosures, e)
	}
	return enclosures, rows.Err()
}

func (r *enclosuresRepo) Create(ctx context.Context, e domain.Enclosure) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO enclosures (name, area, description, user_id)
		 VALUES (?, ?, ?, ?)`,
		e.Name, e.Area, e.Description, mapOptionalInt64(e.UserID))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *enclosuresRepo) Update(ctx context.Context, e domain.Enclosure) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE enclosures SET name = ?, area = ?, description = ?, user_id = ?
		 WHERE id = ?`,
		e.Name, e.Area, e.Description, mapOptionalInt64(e.UserID), e.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *enclosuresRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enclosures WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
