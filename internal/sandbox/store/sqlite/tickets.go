package sqlite

import (
	"context"
	"database/sql"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

type ticketsRepo struct {
	db *sql.DB
}

const ticketColumns = `id, title, recommended_role, urgency, creation_date, description, user_id`

func scanTicket(row interface{ Scan(...any) error }) (domain.Ticket, error) {
	var (
		t       domain.Ticket
		role    string
		urgency string
		userID  sql.NullInt64
	)
	err := row.Scan(&t.ID, &t.Title, &role, &urgency, &t.CreationDate, &t.Description, &userID)
	if err != nil {
		return domain.Ticket{}, mapNotFound(err)
	}
	t.RecommendedRole = zoosdk.OperatorType(role)
	t.Urgency = zoosdk.TicketUrgency(urgency)
	t.UserID = mapNullInt64Ptr(userID)
	return t, nil
}

func (r *ticketsRepo) GetByID(ctx context.Context, id int64) (domain.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	return scanTicket(row)
}

func (r *ticketsRepo) List(ctx context.Context) ([]domain.Ticket, error) {
	return r.query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id`)
}

func (r *ticketsRepo) ListUnassigned(ctx context.Context) ([]domain.Ticket, error) {
	return r.query(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE user_id IS NULL ORDER BY id`)
}

func (r *ticketsRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	return r.query(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE user_id = ? ORDER BY id`, userID)
}

func (r *ticketsRepo) query(ctx context.Context, q string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *ticketsRepo) Create(ctx context.Context, t domain.Ticket) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (title, recommended_role, urgency, creation_date, description, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Title, string(t.RecommendedRole), string(t.Urgency),
		t.CreationDate, t.Description, mapOptionalInt64(t.UserID))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ticketsRepo) Update(ctx context.Context, t domain.Ticket) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET title = ?, recommended_role = ?, urgency = ?, description = ?, user_id = ?
		 WHERE id = ?`,
		t.Title, string(t.RecommendedRole), string(t.Urgency),
		t.Description, mapOptionalInt64(t.UserID), t.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *ticketsRepo) Assign(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET user_id = ? WHERE id = ?`, userID, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *ticketsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
