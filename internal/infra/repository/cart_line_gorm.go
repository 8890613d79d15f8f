package repository

import (
	"context"

	"bambu/internal/domain/model"
	repo "bambu/internal/repository"

	"gorm.io/gorm"
)

type CartLineGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartLineGormRepository(db *gorm.DB) repo.CartLineRepository {
	return &CartLineGormRepository{db: db}
}

func (r *CartLineGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&lines).Error
	if err != nil {
		return []model.CartLine{}, err
	}
	return lines, nil
}

// スナップショット丸ごと差し替え（delete→insertを1トランザクションで）
func (r *CartLineGormRepository) ReplaceForUser(ctx context.Context, userID int64, lines []model.CartLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.CartLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		for i := range lines {
			lines[i].UserID = userID
		}
		return tx.Create(&lines).Error
	})
}
