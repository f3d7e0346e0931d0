package postgres

import (
	"errors"
	"taskmanager/pkg/domain"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE postgres reports for a unique index conflict.
const uniqueViolation = "23505"

type PgTask struct {
	Seq         int64     `db:"seq"         goqu:"skipinsert,skipupdate"`
	ID          string    `db:"id"          goqu:"skipupdate"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Completed   bool      `db:"completed"`
	OwnerID     string    `db:"owner_id"    goqu:"skipupdate"`
	CreatedAt   time.Time `db:"created_at"  goqu:"skipupdate"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (p *PgTask) ToDomain() (*domain.Task, error) {
	id, err := domain.ParseIdentifier(p.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := domain.ParseIdentifier(p.OwnerID)
	if err != nil {
		return nil, err
	}

	return domain.TaskFromStorage(domain.TaskRecord{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		Completed:   p.Completed,
		OwnerID:     ownerID,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	})
}

func (p *PgTask) FromDomain(task *domain.Task) {
	rec := task.Record()

	*p = PgTask{
		ID:          rec.ID.String(),
		Title:       rec.Title,
		Description: rec.Description,
		Completed:   rec.Completed,
		OwnerID:     rec.OwnerID.String(),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

type PgUser struct {
	ID        string    `db:"id"         goqu:"skipupdate"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at" goqu:"skipupdate"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (p *PgUser) ToDomain() (*domain.User, error) {
	id, err := domain.ParseIdentifier(p.ID)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(p.Email)
	if err != nil {
		return nil, err
	}

	return domain.UserFromStorage(domain.UserRecord{
		ID:        id,
		Username:  p.Username,
		Email:     email,
		Password:  p.Password,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}), nil
}

func (p *PgUser) FromDomain(user *domain.User) {
	rec := user.Record()

	*p = PgUser{
		ID:        rec.ID.String(),
		Username:  rec.Username,
		Email:     rec.Email.String(),
		Password:  rec.Password,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func pgTasksToDomain(rows []PgTask) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0, len(rows))
	for i := range rows {
		task, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, task)
	}

	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
