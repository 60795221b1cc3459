package repository

import (
	"context"
	"errors"

	"apparel-backoffice/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CredentialRepository is the durable ("remember me") credential tier.
// The session-scoped tier lives in memory inside session.Store.
type CredentialRepository interface {
	Save(ctx context.Context, cred *model.Credential) error
	Get(ctx context.Context, key string) (*model.Credential, error)
	Delete(ctx context.Context, key string) error
}

type credentialRepoImpl struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepoImpl{
		db: db,
	}
}

func (r *credentialRepoImpl) Save(ctx context.Context, cred *model.Credential) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "roles", "updated_at"}),
	}).Create(cred).Error
}

func (r *credentialRepoImpl) Get(ctx context.Context, key string) (*model.Credential, error) {
	var cred model.Credential
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&cred).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

func (r *credentialRepoImpl) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.Credential{}).Error
}
