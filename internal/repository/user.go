package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"HerShield/internal/model"
	pkgerrors "HerShield/pkg/errors"
	"HerShield/storage/database"
)

// UserRepository 用户数据访问层，联系人以 JSONB 存在 users 表上，
// 所以联系人的读写也走这里
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository() *UserRepository {
	return &UserRepository{db: database.DB()}
}

// NewUserRepositoryWithDB 测试用，注入指定的 DB
func NewUserRepositoryWithDB(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByPublicID(ctx context.Context, publicID int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.UserNotFound
		}
		return nil, fmt.Errorf("failed to get user by public_id: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.UserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.UserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count users by username: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count users by email: %w", err)
	}
	return count > 0, nil
}

// UpdatesByPublicID 按 public_id 更新指定字段
func (r *UserRepository) UpdatesByPublicID(ctx context.Context, publicID int64, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("public_id = ?", publicID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.UserNotFound
	}
	return nil
}

// UpdateContacts 整体替换用户的联系人 JSONB 数组
func (r *UserRepository) UpdateContacts(ctx context.Context, publicID int64, contacts model.EmergencyContacts) error {
	return r.UpdatesByPublicID(ctx, publicID, map[string]interface{}{
		"emergency_contacts": contacts,
	})
}

// Delete 软删除用户（gorm.DeletedAt）
func (r *UserRepository) Delete(ctx context.Context, publicID int64) error {
	result := r.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&model.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.UserNotFound
	}
	return nil
}
