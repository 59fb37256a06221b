package sqlite

import (
	"context"
	"database/sql"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, name, last_name, username, password_hash, role, operator_type`

func (r *usersRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, last_name, username, password_hash, role, operator_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Name, u.LastName, u.Username, u.PasswordHash,
		string(u.Role), mapOptionalOperatorType(u.OperatorType))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *usersRepo) Update(ctx context.Context, u domain.User) error {
	var (
		res sql.Result
		err error
	)
	if u.PasswordHash == "" {
		res, err = r.db.ExecContext(ctx,
			`UPDATE users SET name = ?, last_name = ?, username = ?, role = ?, operator_type = ?
			 WHERE id = ?`,
			u.Name, u.LastName, u.Username,
			string(u.Role), mapOptionalOperatorType(u.OperatorType), u.ID)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE users SET name = ?, last_name = ?, username = ?, password_hash = ?, role = ?, operator_type = ?
			 WHERE id = ?`,
			u.Name, u.LastName, u.Username, u.PasswordHash,
			string(u.Role), mapOptionalOperatorType(u.OperatorType), u.ID)
	}
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
