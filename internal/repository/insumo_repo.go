package repository

import (
	"context"
	"strings"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsumoRepository defines the data access contract for supply items.
// Every method is scoped by the owner id.
type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, owner, id uuid.UUID) (*model.Insumo, error)
	FindByIDs(ctx context.Context, owner uuid.UUID, ids []uuid.UUID) ([]model.Insumo, error)
	List(ctx context.Context, owner uuid.UUID, filter dto.InsumoFilter) ([]model.Insumo, error)
	ListCodigos(ctx context.Context, owner uuid.UUID, prefijo string) ([]string, error)
	Update(ctx context.Context, i *model.Insumo) error
	Delete(ctx context.Context, owner, id uuid.UUID) error

	// Used inside transactions; callers pass the tx instance
	FindForUpdateTx(tx *gorm.DB, owner, id uuid.UUID) (*model.Insumo, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) DB() *gorm.DB { return r.db }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) FindByID(ctx context.Context, owner, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&i).Error
	return &i, err
}

func (r *insumoRepo) FindByIDs(ctx context.Context, owner uuid.UUID, ids []uuid.UUID) ([]model.Insumo, error) {
	var insumos []model.Insumo
	if len(ids) == 0 {
		return insumos, nil
	}
	err := r.db.WithContext(ctx).Where("user_id = ? AND id IN ?", owner, ids).Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) List(ctx context.Context, owner uuid.UUID, filter dto.InsumoFilter) ([]model.Insumo, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", owner)
	if term := strings.TrimSpace(filter.Q); term != "" {
		like := "%" + term + "%"
		q = q.Where("(nombre ILIKE ? OR codigo ILIKE ?)", like, like)
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", strings.ToUpper(strings.TrimSpace(filter.Categoria)))
	}
	var insumos []model.Insumo
	err := q.Order("nombre ASC").Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) ListCodigos(ctx context.Context, owner uuid.UUID, prefijo string) ([]string, error) {
	var codigos []string
	err := r.db.WithContext(ctx).Model(&model.Insumo{}).
		Where("user_id = ? AND codigo LIKE ?", owner, prefijo+"%").
		Pluck("codigo", &codigos).Error
	return codigos, err
}

func (r *insumoRepo) Update(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *insumoRepo) Delete(ctx context.Context, owner, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).Delete(&model.Insumo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindForUpdateTx reads the row with SELECT ... FOR UPDATE so concurrent
// checkouts serialize on it until the transaction ends.
func (r *insumoRepo) FindForUpdateTx(tx *gorm.DB, owner, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, owner).First(&i).Error
	return &i, err
}

// UpdateStockTx applies delta to cantidad. The update is conditional so the
// stored quantity can never go below zero, even without a prior lock.
func (r *insumoRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	res := tx.Model(&model.Insumo{}).
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
