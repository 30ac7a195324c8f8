package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
)

type FollowPostgresStorage struct {
	db *gorm.DB
}

func NewFollowPostgresStorage(db *gorm.DB) *FollowPostgresStorage {
	return &FollowPostgresStorage{db: db}
}

func (s *FollowPostgresStorage) Follow(ctx context.Context, userID, authorID uint) (bool, error) {
	following, err := s.IsFollowing(ctx, userID, authorID)
	if err != nil {
		return false, err
	}
	if following {
		return false, nil
	}

	err = s.db.Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error
	if err != nil {
		// параллельный запрос мог успеть создать ребро - уникальный индекс не даст дубль
		if following, checkErr := s.IsFollowing(ctx, userID, authorID); checkErr == nil && following {
			return false, nil
		}
		return false, fmt.Errorf("could not create follow: %w", err)
	}

	return true, nil
}

func (s *FollowPostgresStorage) Unfollow(ctx context.Context, userID, authorID uint) (bool, error) {
	result := s.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if result.Error != nil {
		return false, fmt.Errorf("could not delete follow: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *FollowPostgresStorage) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("could not check follow: %w", err)
	}
	return count > 0, nil
}

func (s *FollowPostgresStorage) FollowedAuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := s.db.Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Order("author_id asc").
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("could not get followed authors: %w", err)
	}
	return ids, nil
}
