package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/untis"
)

// sessionOpener открывает короткую сессию WebUntis по сохранённому аккаунту
type sessionOpener struct {
	api    UntisAPI
	box    Sealer
	logger *zap.Logger
}

// withSession выполняет fn в отдельной сессии и всегда делает logout
func (o sessionOpener) withSession(ctx context.Context, acc *model.Account, fn func(s *untis.Session) error) error {
	password, err := o.box.OpenString(acc.SealedPassword)
	if err != nil {
		return fmt.Errorf("open stored password: %w", err)
	}

	sess, err := o.api.Authenticate(ctx, untis.Credentials{
		Server:   acc.Server,
		School:   acc.School,
		Username: acc.Username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	defer func() {
		// logout не должен зависеть от отмены запроса пользователя
		if err := o.api.Logout(context.WithoutCancel(ctx), sess); err != nil {
			o.logger.Warn("Failed to logout from untis",
				zap.Int64("user_id", acc.UserID),
				zap.Error(err),
			)
		}
	}()

	return fn(sess)
}
