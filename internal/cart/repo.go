package cart

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// Repository persists carts and cart lines. Reads and clears span ALL of a
// user's carts, not just the newest one, so lines staged in a shadow cart
// created under a race are never stranded.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Create(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddLine(ctx context.Context, cartID uuid.UUID, partNo string) (*models.CartLine, error)
	ListLinesByUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	ClearLinesByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type repository struct {
	base repo.Base
}

// NewRepository returns a cart repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: repo.NewBase(tx)}
}

func (r *repository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.base.DB(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&cart).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *repository) Create(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart := models.Cart{ID: uuid.New(), UserID: userID}
	if err := r.base.DB(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) AddLine(ctx context.Context, cartID uuid.UUID, partNo string) (*models.CartLine, error) {
	line := models.CartLine{
		ID:     uuid.New(),
		CartID: cartID,
		PartNo: partNo,
		Qty:    1,
	}
	if err := r.base.DB(ctx).Create(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *repository) ListLinesByUser(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := r.base.DB(ctx).
		Joins("JOIN carts ON carts.id = cart_lines.cart_id").
		Where("carts.user_id = ?", userID).
		Order("cart_lines.part_no ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) ClearLinesByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.base.DB(ctx).
		Where("cart_id IN (?)", r.base.DB(ctx).
			Model(&models.Cart{}).
			Select("id").
			Where("user_id = ?", userID)).
		Delete(&models.CartLine{})
	return res.RowsAffected, res.Error
}
