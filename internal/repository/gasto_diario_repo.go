package repository

import (
	"context"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GastoDiarioRepository interface {
	Create(ctx context.Context, g *model.GastoDiario) error
	FindByID(ctx context.Context, owner, id uuid.UUID) (*model.GastoDiario, error)
	// List returns the owner's daily expenses in the range, newest first.
	List(ctx context.Context, owner uuid.UUID, rango Rango) ([]model.GastoDiario, error)
	Update(ctx context.Context, g *model.GastoDiario) error
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

type gastoDiarioRepo struct{ db *gorm.DB }

func NewGastoDiarioRepository(db *gorm.DB) GastoDiarioRepository { return &gastoDiarioRepo{db: db} }

func (r *gastoDiarioRepo) Create(ctx context.Context, g *model.GastoDiario) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoDiarioRepo) FindByID(ctx context.Context, owner, id uuid.UUID) (*model.GastoDiario, error) {
	var g model.GastoDiario
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&g).Error
	return &g, err
}

func (r *gastoDiarioRepo) List(ctx context.Context, owner uuid.UUID, rango Rango) ([]model.GastoDiario, error) {
	var gastos []model.GastoDiario
	q := rango.apply(r.db.WithContext(ctx).Where("user_id = ?", owner), `"timestamp"`)
	err := q.Order(`"timestamp" DESC`).Find(&gastos).Error
	return gastos, err
}

func (r *gastoDiarioRepo) Update(ctx context.Context, g *model.GastoDiario) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *gastoDiarioRepo) Delete(ctx context.Context, owner, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).Delete(&model.GastoDiario{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
