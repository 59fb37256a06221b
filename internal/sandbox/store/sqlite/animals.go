package sqlite

import (
	"context"
	"database/sql"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

type animalsRepo struct {
	db *sql.DB
}

const animalColumns = `id, name, category, weight, user_id, enclosure_id`

func scanAnimal(row interface{ Scan(...any) error }) (domain.Animal, error) {
	var (
		a           domain.Animal
		category    string
		userID      sql.NullInt64
		enclosureID sql.NullInt64
	)
	err := row.Scan(&a.ID, &a.Name, &category, &a.Weight, &userID, &enclosureID)
	if err != nil {
		return domain.Animal{}, mapNotFound(err)
	}
	a.Category = zoosdk.AnimalCategory(category)
	a.UserID = mapNullInt64Ptr(userID)
	a.EnclosureID = mapNullInt64Ptr(enclosureID)
	return a, nil
}

func (r *animalsRepo) GetByID(ctx context.Context, id int64) (domain.Animal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+animalColumns+` FROM animals WHERE id = ?`, id)
	return scanAnimal(row)
}

func (r *animalsRepo) List(ctx context.Context) ([]domain.Animal, error) {
	return r.query(ctx, `SELECT `+animalColumns+` FROM animals ORDER BY id`)
}

func (r *animalsRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Animal, error) {
	return r.query(ctx,
		`SELECT `+animalColumns+` FROM animals WHERE user_id = ? ORDER BY id`, userID)
}

func (r *animalsRepo) ListByEnclosure(ctx context.Context, enclosureID int64) ([]domain.Animal, error) {
	return r.query(ctx,
		`SELECT `+animalColumns+` FROM animals WHERE enclosure_id = ? ORDER BY id`, enclosureID)
}

func (r *animalsRepo) query(ctx context.Context, q string, args ...any) ([]domain.Animal, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var animals []domain.Animal
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		animals = append(animals, a)
	}
	return animals, rows.Err()
}

func (r *animalsRepo) Create(ctx context.Context, a domain.Animal) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO animals (name, category, weight, user_id, enclosure_id)
		 VALUES (?, ?, ?, ?, ?)`,
		a.Name, string(a.Category), a.Weight,
		mapOptionalInt64(a.UserID), mapOptionalInt64(a.EnclosureID))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *animalsRepo) Update(ctx context.Context, a domain.Animal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE animals SET name = ?, category = ?, weight = ?, user_id = ?, enclosure_id = ?
		 WHERE id = ?`,
		a.Name, string(a.Category), a.Weight,
		mapOptionalInt64(a.UserID), mapOptionalInt64(a.EnclosureID), a.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *animalsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
