package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository привязанные учётные записи WebUntis (одна на пользователя)
type AccountRepository struct {
	*base.Repository
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{Repository: base.NewRepository(pool)}
}

const accountColumns = `user_id, server, school, school_name, username, sealed_password,
	person_id, person_type, klasse_id, school_year, last_import, created_at, updated_at`

// Upsert создаёт или заменяет учётную запись пользователя
func (r *AccountRepository) Upsert(ctx context.Context, a *model.Account) error {
	query := `
		INSERT INTO untis_accounts (user_id, server, school, school_name, username, sealed_password,
			person_id, person_type, klasse_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			server = EXCLUDED.server,
			school = EXCLUDED.school,
			school_name = EXCLUDED.school_name,
			username = EXCLUDED.username,
			sealed_password = EXCLUDED.sealed_password,
			person_id = EXCLUDED.person_id,
			person_type = EXCLUDED.person_type,
			klasse_id = EXCLUDED.klasse_id,
			school_year = '',
			last_import = NULL,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		a.UserID,
		a.Server,
		a.School,
		a.SchoolName,
		a.Username,
		a.SealedPassword,
		a.PersonID,
		a.PersonType,
		a.KlasseID,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert untis account: %w", err)
	}

	return nil
}

// GetByUserID возвращает nil, nil если аккаунт не привязан
func (r *AccountRepository) GetByUserID(ctx context.Context, userID int64) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM untis_accounts WHERE user_id = $1`

	a, err := scanAccount(r.QueryRow(ctx, query, userID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get untis account: %w", err)
	}

	return a, nil
}

// Delete удаляет аккаунт. Отмеченные курсы остаются в своём пространстве.
func (r *AccountRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM untis_accounts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete untis account: %w", err)
	}
	return nil
}

// ListAll все привязанные аккаунты (для фонового прогрева кэша)
func (r *AccountRepository) ListAll(ctx context.Context) ([]*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM untis_accounts ORDER BY user_id`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list untis accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan untis account: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate untis accounts: %w", err)
	}

	return accounts, nil
}

// UpdateSchoolInfo сохраняет учебный год и время последнего импорта на сервере
func (r *AccountRepository) UpdateSchoolInfo(ctx context.Context, userID int64, schoolYear string, lastImport time.Time) error {
	query := `
		UPDATE untis_accounts
		SET school_year = $1, last_import = $2, updated_at = NOW()
		WHERE user_id = $3
	`

	var imported *time.Time
	if !lastImport.IsZero() {
		imported = &lastImport
	}

	affected, err := r.ExecAffected(ctx, query, schoolYear, imported, userID)
	if err != nil {
		return fmt.Errorf("update school info: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("untis account not found")
	}

	return nil
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.UserID,
		&a.Server,
		&a.School,
		&a.SchoolName,
		&a.Username,
		&a.SealedPassword,
		&a.PersonID,
		&a.PersonType,
		&a.KlasseID,
		&a.SchoolYear,
		&a.LastImport,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
