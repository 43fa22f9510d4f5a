package repository

import (
	"context"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EgresoRepository interface {
	Create(ctx context.Context, e *model.Egreso) error
	FindByID(ctx context.Context, owner, id uuid.UUID) (*model.Egreso, error)
	// List returns the owner's expenses in the range, newest first.
	List(ctx context.Context, owner uuid.UUID, rango Rango) ([]model.Egreso, error)
	Update(ctx context.Context, e *model.Egreso) error
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

type egresoRepo struct{ db *gorm.DB }

func NewEgresoRepository(db *gorm.DB) EgresoRepository { return &egresoRepo{db: db} }

func (r *egresoRepo) Create(ctx context.Context, e *model.Egreso) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *egresoRepo) FindByID(ctx context.Context, owner, id uuid.UUID) (*model.Egreso, error) {
	var e model.Egreso
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&e).Error
	return &e, err
}

func (r *egresoRepo) List(ctx context.Context, owner uuid.UUID, rango Rango) ([]model.Egreso, error) {
	var egresos []model.Egreso
	q := rango.apply(r.db.WithContext(ctx).Where("user_id = ?", owner), `"timestamp"`)
	err := q.Order(`"timestamp" DESC`).Find(&egresos).Error
	return egresos, err
}

func (r *egresoRepo) Update(ctx context.Context, e *model.Egreso) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *egresoRepo) Delete(ctx context.Context, owner, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).Delete(&model.Egreso{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
