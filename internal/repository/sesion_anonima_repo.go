package repository

import (
	"context"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SesionAnonimaRepository interface {
	Create(ctx context.Context, s *model.SesionAnonima) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SesionAnonima, error)
	TouchLastSeen(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sesionAnonimaRepo struct{ db *gorm.DB }

func NewSesionAnonimaRepository(db *gorm.DB) SesionAnonimaRepository {
	return &sesionAnonimaRepo{db: db}
}

func (r *sesionAnonimaRepo) Create(ctx context.Context, s *model.SesionAnonima) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sesionAnonimaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SesionAnonima, error) {
	var s model.SesionAnonima
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *sesionAnonimaRepo) TouchLastSeen(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.SesionAnonima{}).Where("id = ?", id).Update("last_seen_at", at).Error
}
