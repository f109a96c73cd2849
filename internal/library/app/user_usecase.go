package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/api"
	"libraryhub/internal/library/ports/repositories"
	"libraryhub/internal/library/ports/services"
	"libraryhub/pkg/logger"
)

const (
	methodCreateUser = "UserUseCase.CreateUser"
	methodGetUser    = "UserUseCase.GetUser"
	methodListUsers  = "UserUseCase.ListUsers"
	methodUpdateUser = "UserUseCase.UpdateUser"
	methodDeleteUser = "UserUseCase.DeleteUser"

	msgUserCreated      = "user created"
	msgUserUpdated      = "user updated"
	msgUserDeleted      = "user deleted"
	msgProfileCacheHit  = "profile served from cache"
	msgProfileCacheFail = "profile cache unavailable"

	errCtxCreatingUser = "creating user"
	errCtxGettingUser  = "getting user"
	errCtxListingUsers = "listing users"
	errCtxUpdatingUser = "updating user"
	errCtxDeletingUser = "deleting user"
	errCtxHashing      = "hashing password"

	defaultUserLimit = 50
	maxUserLimit     = 200
)

// UserUseCase справочник читателей с кешем профилей.
type UserUseCase struct {
	uow       repositories.UnitOfWork
	passwords services.PasswordService
	cache     services.ProfileCache
	clock     services.Clock
}

var _ api.UserService = (*UserUseCase)(nil)

// NewUserUseCase создает справочник. cache может быть nil.
func NewUserUseCase(
	uow repositories.UnitOfWork,
	passwords services.PasswordService,
	cache services.ProfileCache,
	clock services.Clock,
) *UserUseCase {
	return &UserUseCase{
		uow:       uow,
		passwords: passwords,
		cache:     cache,
		clock:     clock,
	}
}

// CreateUser регистрирует читателя с уникальным email.
func (uc *UserUseCase) CreateUser(ctx context.Context, name, email, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser))

	user := entities.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     entities.NormalizeEmail(email),
		CreatedAt: uc.clock.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, wrap(errCtxCreatingUser, err)
	}
	if err := entities.ValidatePassword(password); err != nil {
		return nil, wrap(errCtxCreatingUser, err)
	}

	hash, err := uc.passwords.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, errCtxHashing, zap.Error(err))
		return nil, wrap(errCtxHashing, err)
	}
	user.PasswordHash = hash

	err = uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := checkEmail(ctx, tx, user); err != nil {
			return err
		}
		return tx.Users().Create(ctx, &user)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.String("user_id", user.ID))
	return &user, nil
}

func checkEmail(ctx context.Context, tx repositories.Store, user entities.User) error {
	existing, err := tx.Users().FindByEmail(ctx, user.Email)
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != user.ID:
		return entities.ErrEmailTaken
	}
	return nil
}

// GetUser возвращает профиль, сначала из кеша. Сбой кеша не мешает чтению из базы.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUser), zap.String("user_id", id))

	if uc.cache != nil {
		user, err := uc.cache.Get(ctx, id)
		switch {
		case err == nil:
			log.Debug(ctx, msgProfileCacheHit)
			return user, nil
		case !errors.Is(err, services.ErrCacheMiss):
			log.Warn(ctx, msgProfileCacheFail, zap.Error(err))
		}
	}

	user, err := uc.uow.Users().FindByID(ctx, id)
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxGettingUser, err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, user); err != nil {
			log.Warn(ctx, msgProfileCacheFail, zap.Error(err))
		}
	}
	return user, nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context, skip, limit int) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListUsers))

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultUserLimit
	}
	if limit > maxUserLimit {
		limit = maxUserLimit
	}

	users, err := uc.uow.Users().List(ctx, skip, limit)
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxListingUsers, err)
	}
	if users == nil {
		users = []*entities.User{}
	}
	return users, nil
}

// ReplaceUser заменяет имя, email и пароль.
func (uc *UserUseCase) ReplaceUser(ctx context.Context, id, name, email, password string) (*entities.User, error) {
	return uc.PatchUser(ctx, id, entities.UserPatch{Name: &name, Email: &email, Password: &password})
}

// PatchUser меняет переданные поля. Новый пароль хешируется.
func (uc *UserUseCase) PatchUser(ctx context.Context, id string, p entities.UserPatch) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.String("user_id", id))

	var hash string
	if p.Password != nil {
		if err := entities.ValidatePassword(*p.Password); err != nil {
			return nil, wrap(errCtxUpdatingUser, err)
		}
		h, err := uc.passwords.Hash(ctx, *p.Password)
		if err != nil {
			log.Error(ctx, errCtxHashing, zap.Error(err))
			return nil, wrap(errCtxHashing, err)
		}
		hash = h
	}

	var updated entities.User
	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		current, err := tx.Users().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next := *current
		if p.Name != nil {
			next.Name = strings.TrimSpace(*p.Name)
		}
		if p.Email != nil {
			next.Email = entities.NormalizeEmail(*p.Email)
		}
		if hash != "" {
			next.PasswordHash = hash
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if next.Email != current.Email {
			if err := checkEmail(ctx, tx, next); err != nil {
				return err
			}
		}

		updated = next
		return tx.Users().Update(ctx, &updated)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return nil, wrap(errCtxUpdatingUser, err)
	}

	uc.evict(ctx, log, id)
	log.Info(ctx, msgUserUpdated)
	return &updated, nil
}

// DeleteUser удаляет читателя без открытых выдач; закрытая история удаляется вместе с ним.
func (uc *UserUseCase) DeleteUser(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteUser), zap.String("user_id", id))

	err := uc.uow.WithinTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Users().FindByIDForUpdate(ctx, id); err != nil {
			return err
		}
		active, err := tx.Loans().CountActiveByUser(ctx, id, "")
		if err != nil {
			return err
		}
		if active > 0 {
			return entities.ErrUserHasActiveLoans
		}
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		logFailure(ctx, log, err)
		return wrap(errCtxDeletingUser, err)
	}

	uc.evict(ctx, log, id)
	log.Info(ctx, msgUserDeleted)
	return nil
}

func (uc *UserUseCase) evict(ctx context.Context, log *logger.Logger, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, id); err != nil {
		log.Warn(ctx, msgProfileCacheFail, zap.Error(err))
	}
}
