package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Freeeeeet/timetable_bot/internal/cache"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/untis"
)

const minSchoolQueryLen = 3

// LinkRequest данные для привязки аккаунта WebUntis
type LinkRequest struct {
	School   model.School
	Username string
	Password string
}

type AccountService struct {
	accounts AccountStore
	api      UntisAPI
	box      Sealer
	cache    cache.WeekCache
	logger   *zap.Logger
}

func NewAccountService(accounts AccountStore, api UntisAPI, box Sealer, weekCache cache.WeekCache, logger *zap.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		api:      api,
		box:      box,
		cache:    weekCache,
		logger:   logger,
	}
}

// Link проверяет логин на сервере WebUntis и сохраняет аккаунт с зашифрованным паролем
func (s *AccountService) Link(ctx context.Context, userID int64, req LinkRequest) (*model.Account, error) {
	username := strings.TrimSpace(req.Username)

	sess, err := s.api.Authenticate(ctx, untis.Credentials{
		Server:   req.School.Server,
		School:   req.School.LoginName,
		Username: username,
		Password: req.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if err := s.api.Logout(context.WithoutCancel(ctx), sess); err != nil {
		s.logger.Warn("Failed to logout after link", zap.Int64("user_id", userID), zap.Error(err))
	}

	sealed, err := s.box.SealString(req.Password)
	if err != nil {
		return nil, fmt.Errorf("seal password: %w", err)
	}

	acc := &model.Account{
		UserID:         userID,
		Server:         req.School.Server,
		School:         req.School.LoginName,
		SchoolName:     req.School.DisplayName,
		Username:       username,
		SealedPassword: sealed,
		PersonID:       sess.PersonID,
		PersonType:     sess.PersonType,
		KlasseID:       sess.KlasseID,
	}

	if err := s.accounts.Upsert(ctx, acc); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	if err := s.cache.Invalidate(ctx, acc.Namespace()); err != nil {
		s.logger.Warn("Failed to invalidate week cache", zap.String("namespace", acc.Namespace()), zap.Error(err))
	}

	s.logger.Info("Untis account linked",
		zap.Int64("user_id", userID),
		zap.String("server", acc.Server),
		zap.String("school", acc.School),
		zap.Int64("person_id", acc.PersonID),
	)

	return acc, nil
}

// Unlink удаляет аккаунт и кэш его недель
func (s *AccountService) Unlink(ctx context.Context, userID int64) error {
	acc, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if err := s.cache.Invalidate(ctx, acc.Namespace()); err != nil {
		s.logger.Warn("Failed to invalidate week cache", zap.String("namespace", acc.Namespace()), zap.Error(err))
	}

	s.logger.Info("Untis account unlinked", zap.Int64("user_id", userID))
	return nil
}

// Get возвращает ErrAccountNotLinked, если аккаунта нет
func (s *AccountService) Get(ctx context.Context, userID int64) (*model.Account, error) {
	acc, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if acc == nil {
		return nil, ErrAccountNotLinked
	}
	return acc, nil
}

// SearchSchools ищет школы, запрос не короче трёх символов
func (s *AccountService) SearchSchools(ctx context.Context, query string) ([]model.School, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSchoolQueryLen {
		return nil, ErrQueryTooShort
	}

	schools, err := s.api.SearchSchools(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search schools: %w", err)
	}
	return schools, nil
}
