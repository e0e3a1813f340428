package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

type UserRepo interface {
	GetByExternalRef(ctx context.Context, tx *gorm.DB, ref string) (*types.User, error)
	// EnsureByExternalRef creates the user on first sight of ref.
	EnsureByExternalRef(ctx context.Context, tx *gorm.DB, ref string) (*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) GetByExternalRef(ctx context.Context, tx *gorm.DB, ref string) (*types.User, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}
	var row types.User
	err := t.WithContext(ctx).Where("external_ref = ?", ref).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *userRepo) EnsureByExternalRef(ctx context.Context, tx *gorm.DB, ref string) (*types.User, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("user repo: empty external ref")
	}
	existing, err := r.GetByExternalRef(ctx, t, ref)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	row := &types.User{ID: uuid.New(), ExternalRef: ref}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
