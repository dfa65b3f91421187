package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MarkedCourseRepository отмеченные курсы пользователя в пространстве логин@школа
type MarkedCourseRepository struct {
	*base.Repository
}

func NewMarkedCourseRepository(pool *pgxpool.Pool) *MarkedCourseRepository {
	return &MarkedCourseRepository{Repository: base.NewRepository(pool)}
}

// List ключи курсов в алфавитном порядке
func (r *MarkedCourseRepository) List(ctx context.Context, userID int64, namespace string) ([]string, error) {
	query := `
		SELECT course_key
		FROM marked_courses
		WHERE user_id = $1 AND namespace = $2
		ORDER BY course_key
	`

	rows, err := r.Query(ctx, query, userID, namespace)
	if err != nil {
		return nil, fmt.Errorf("list marked courses: %w", err)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect marked courses: %w", err)
	}

	return keys, nil
}

// Replace заменяет набор отмеченных курсов целиком в одной транзакции
func (r *MarkedCourseRepository) Replace(ctx context.Context, userID int64, namespace string, keys []string) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM marked_courses WHERE user_id = $1 AND namespace = $2`, userID, namespace)
		if err != nil {
			return fmt.Errorf("clear marked courses: %w", err)
		}

		if len(keys) == 0 {
			return nil
		}

		rows := make([][]any, len(keys))
		for i, k := range keys {
			rows[i] = []any{userID, namespace, k}
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"marked_courses"},
			[]string{"user_id", "namespace", "course_key"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("insert marked courses: %w", err)
		}

		return nil
	})
}
