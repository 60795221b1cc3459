package repository

import (
	"context"
	"errors"

	"apparel-backoffice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	Get(ctx context.Context, id string) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	Delete(ctx context.Context, id string) error
	GetLines(ctx context.Context, cartID string) ([]*model.CartLine, error)
	GetLine(ctx context.Context, cartID string, variantID int64) (*model.CartLine, error)
	SaveLine(ctx context.Context, line *model.CartLine) error
	DeleteLine(ctx context.Context, cartID string, variantID int64) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Create(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *cartRepoImpl) Get(ctx context.Context, id string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) Save(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Save(cart).Error
}

// Delete removes the cart and its lines once an order is placed or the
// session is discarded.
func (r *cartRepoImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&model.CartLine{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Cart{}).Error
	})
}

func (r *cartRepoImpl) GetLines(ctx context.Context, cartID string) ([]*model.CartLine, error) {
	var lines []*model.CartLine
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&lines).Error

	if err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *cartRepoImpl) GetLine(ctx context.Context, cartID string, variantID int64) (*model.CartLine, error) {
	var line model.CartLine
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		First(&line).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &line, nil
}

func (r *cartRepoImpl) SaveLine(ctx context.Context, line *model.CartLine) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "variant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"unit_price", "quantity", "updated_at"}),
	}).Create(line).Error
}

func (r *cartRepoImpl) DeleteLine(ctx context.Context, cartID string, variantID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Delete(&model.CartLine{}).Error
}
