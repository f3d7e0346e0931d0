package postgres

import (
	"context"
	"fmt"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/storage"

	"github.com/doug-martin/goqu/v9"
)

const (
	usersTable = "users"
)

// StoreUser inserts a user. A clash on the unique email index is reported as
// a domain UserEmailExists error.
func (p *PgSQL) StoreUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	var row PgUser
	row.FromDomain(user)

	var result PgUser
	if _, err := p.Builder.Insert(usersTable).
		Rows(row).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &result); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewUserEmailExistsError(user.Email())
		}

		return nil, fmt.Errorf("could not store user into pg: %w", err)
	}

	return result.ToDomain()
}

func (p *PgSQL) UserByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(goqu.I("email").Eq(email.String())).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user by email: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

func (p *PgSQL) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	var row PgUser
	row.FromDomain(user)

	var result PgUser
	found, err := p.Builder.Update(usersTable).
		Set(row).
		Where(goqu.I("id").Eq(row.ID)).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &result)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewUserEmailExistsError(user.Email())
		}

		return nil, fmt.Errorf("could not update user in pg: %w", err)
	}
	if !found {
		return nil, storage.ErrRecordNotFound
	}

	return result.ToDomain()
}

func (p *PgSQL) DeleteUser(ctx context.Context, id domain.Identifier) error {
	if _, err := p.Builder.Delete(usersTable).
		Where(goqu.I("id").Eq(id.String())).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not delete user in pg: %w", err)
	}

	return nil
}
