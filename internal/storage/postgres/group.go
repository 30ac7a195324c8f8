package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
)

type GroupPostgresStorage struct {
	db *gorm.DB
}

func NewGroupPostgresStorage(db *gorm.DB) *GroupPostgresStorage {
	return &GroupPostgresStorage{db: db}
}

func (s *GroupPostgresStorage) CreateGroup(ctx context.Context, title, slug, description string) (*models.Group, error) {
	var count int
	err := s.db.Model(&models.Group{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("could not check slug: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("group %s: %w", slug, storage.ErrAlreadyExists)
	}

	group := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}

	err = s.db.Create(group).Error
	if err != nil {
		return nil, fmt.Errorf("could not create group: %w", err)
	}

	return group, nil
}

func (s *GroupPostgresStorage) GetGroupByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	err := s.db.First(&group, id).Error
	if err != nil {
		return nil, wrapNotFound(err, "could not get group %d", id)
	}
	return &group, nil
}

func (s *GroupPostgresStorage) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	err := s.db.Where("slug = ?", slug).First(&group).Error
	if err != nil {
		return nil, wrapNotFound(err, "could not get group %s", slug)
	}
	return &group, nil
}

func (s *GroupPostgresStorage) ListGroups(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	err := s.db.Order("title asc").Order("id asc").Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("could not get groups: %w", err)
	}
	return groups, nil
}
