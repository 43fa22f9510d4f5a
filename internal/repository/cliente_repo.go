package repository

import (
	"context"
	"strings"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, owner, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context, owner uuid.UUID, filter dto.ClienteFilter) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, owner, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, owner uuid.UUID, filter dto.ClienteFilter) ([]model.Cliente, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", owner)
	if term := strings.TrimSpace(filter.Q); term != "" {
		q = q.Where("(nombre_completo ILIKE ? OR ci LIKE ?)", "%"+term+"%", "%"+term+"%")
	}
	var clientes []model.Cliente
	err := q.Order("nombre_completo ASC").Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) Delete(ctx context.Context, owner, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, owner).Delete(&model.Cliente{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
