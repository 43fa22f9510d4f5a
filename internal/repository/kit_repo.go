package repository

import (
	"context"
	"encoding/json"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KitRepository defines the data access contract for kits.
type KitRepository interface {
	Create(ctx context.Context, k *model.Kit) error
	FindByID(ctx context.Context, owner, id uuid.UUID) (*model.Kit, error)
	List(ctx context.Context, owner uuid.UUID) ([]model.Kit, error)
	// ListByInsumo returns the kits that list insumoID among their components.
	ListByInsumo(ctx context.Context, owner, insumoID uuid.UUID) ([]model.Kit, error)
	Update(ctx context.Context, k *model.Kit) error
	Delete(ctx context.Context, owner, id uuid.UUID) error

	FindForUpdateTx(tx *gorm.DB, owner, id uuid.UUID) (*model.Kit, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	DB() *gorm.DB
}

type kitRepo struct{ db *gorm.DB }

func NewKitRepository(db *gorm.DB) KitRepository { return &kitRepo{db: db} }

func (r *kitRepo) DB() *gorm.DB { return r.db }

func (r *kitRepo) Create(ctx context.Context, k *model.Kit) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *kitRepo) FindByID(ctx context.Context, owner, id uuid.UUID) (*model.Kit, error) {
	var k model.Kit
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&k).Error
	return &k, err
}

func (r *kitRepo) List(ctx context.Context, owner uuid.UUID) ([]model.Kit, error) {
	var kits []model.Kit
	err := r.db.WithContext(ctx).Where("user_id = ?", owner).Order("nombre ASC").Find(&kits).Error
	return kits, err
}

func (r *kitRepo) ListByInsumo(ctx context.Context, owner, insumoID uuid.UUID) ([]model.Kit, error) {
	needle, err := json.Marshal([]map[string]string{{"insumo_id": insumoID.String()}})
	if err != nil {
		return nil, err
	}
	var kits []model.Kit
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND componentes @> ?::jsonb", owner, string(needle)).
		Find(&kits).Error
	return kits, err
}

func (r *kitRepo) Update(ctx context.Context, k *model.Kit) error {
	return r.db.WithContext(ctx).Save(k).Error
}

func (r *kitRepo) Delete(ctx context.Context, owner, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).Delete(&model.Kit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *kitRepo) FindForUpdateTx(tx *gorm.DB, owner, id uuid.UUID) (*model.Kit, error) {
	var k model.Kit
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, owner).First(&k).Error
	return &k, err
}

func (r *kitRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	res := tx.Model(&model.Kit{}).
		Where("id = ? AND cantidad + ? >= 0", id, delta).
		Update("cantidad", gorm.Expr("cantidad + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockNegativo
	}
	return nil
}
