package repository

import (
	"context"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, owner, id uuid.UUID) (*model.Venta, error)
	NextTicketNumber(ctx context.Context, tx *gorm.DB) (int, error)
	List(ctx context.Context, owner uuid.UUID, rango Rango, page, limit int) ([]model.Venta, int64, error)
	// ListAll returns every sale in the range, oldest first.
	ListAll(ctx context.Context, owner uuid.UUID, rango Rango) ([]model.Venta, error)
	// TotalesPorCliente sums venta.total grouped by cliente_id.
	TotalesPorCliente(ctx context.Context, owner uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, owner, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&v).Error
	return &v, err
}

func (r *ventaRepo) NextTicketNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic ticket number generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('ventas_numero_ticket_seq')").Scan(&num).Error
	return num, err
}

func (r *ventaRepo) List(ctx context.Context, owner uuid.UUID, rango Rango, page, limit int) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := rango.apply(r.db.WithContext(ctx).Model(&model.Venta{}).Where("user_id = ?", owner), "created_at")
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) ListAll(ctx context.Context, owner uuid.UUID, rango Rango) ([]model.Venta, error) {
	var ventas []model.Venta
	q := rango.apply(r.db.WithContext(ctx).Where("user_id = ?", owner), "created_at")
	err := q.Order("created_at ASC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) TotalesPorCliente(ctx context.Context, owner uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []struct {
		ClienteID uuid.UUID
		Total     decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("cliente_id, SUM(total) AS total").
		Where("user_id = ? AND cliente_id IS NOT NULL", owner).
		Group("cliente_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totales := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		totales[row.ClienteID] = row.Total
	}
	return totales, nil
}
