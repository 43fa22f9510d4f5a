package repository

import (
	"context"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComandaRepository stores the parked cart of each table.
type ComandaRepository interface {
	// Upsert writes the comanda keyed by (owner, mesa), replacing any previous one.
	Upsert(ctx context.Context, c *model.ComandaPendiente) error
	Find(ctx context.Context, owner uuid.UUID, mesa string) (*model.ComandaPendiente, error)
	List(ctx context.Context, owner uuid.UUID) ([]model.ComandaPendiente, error)
	DeleteTx(tx *gorm.DB, owner uuid.UUID, mesa string) error
}

type comandaRepo struct{ db *gorm.DB }

func NewComandaRepository(db *gorm.DB) ComandaRepository { return &comandaRepo{db: db} }

func (r *comandaRepo) Upsert(ctx context.Context, c *model.ComandaPendiente) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "mesa"}},
		DoUpdates: clause.AssignmentColumns([]string{"carrito", "cliente_id", "updated_at"}),
	}).Create(c).Error
}

func (r *comandaRepo) Find(ctx context.Context, owner uuid.UUID, mesa string) (*model.ComandaPendiente, error) {
	var c model.ComandaPendiente
	err := r.db.WithContext(ctx).Where("user_id = ? AND mesa = ?", owner, mesa).First(&c).Error
	return &c, err
}

func (r *comandaRepo) List(ctx context.Context, owner uuid.UUID) ([]model.ComandaPendiente, error) {
	var comandas []model.ComandaPendiente
	err := r.db.WithContext(ctx).Where("user_id = ?", owner).Order("mesa ASC").Find(&comandas).Error
	return comandas, err
}

// DeleteTx removes the comanda if present; a missing row is not an error.
func (r *comandaRepo) DeleteTx(tx *gorm.DB, owner uuid.UUID, mesa string) error {
	return tx.Where("user_id = ? AND mesa = ?", owner, mesa).Delete(&model.ComandaPendiente{}).Error
}
