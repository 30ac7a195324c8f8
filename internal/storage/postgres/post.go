package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct {
	db *gorm.DB
}

func NewPostPostgresStorage(db *gorm.DB) *PostPostgresStorage {
	return &PostPostgresStorage{db: db}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, authorID uint, text string, groupID *uint, image string) (*models.Post, error) {
	var count int
	err := s.db.Model(&models.User{}).Where("id = ?", authorID).Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("could not check author: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("could not create post: author %d: %w", authorID, storage.ErrNotFound)
	}

	p := &models.Post{
		Text:     text,
		Image:    image,
		AuthorID: authorID,
		GroupID:  groupID,
	}

	err = s.db.Set("gorm:save_associations", false).Create(p).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return s.GetPostByID(ctx, p.ID)
}

func (s *PostPostgresStorage) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	err := s.db.Preload("Author").Preload("Group").First(&p, id).Error
	if err != nil {
		return nil, wrapNotFound(err, "could not get post by id %d", id)
	}
	return &p, nil
}

// UpdatePost перезаписывает текст, группу и картинку; id, автор и дата не меняются.
// Одновременные правки не согласуются - побеждает последняя.
func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id uint, text string, groupID *uint, image string) (*models.Post, error) {
	result := s.db.Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"text":     text,
		"group_id": groupID,
		"image":    image,
	})
	if result.Error != nil {
		return nil, fmt.Errorf("could not update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}

	return s.GetPostByID(ctx, id)
}

func (s *PostPostgresStorage) CountPosts(ctx context.Context, filter post.Filter) (int, error) {
	var count int
	err := applyFilter(s.db.Model(&models.Post{}), filter).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count posts: %w", err)
	}
	return count, nil
}

func (s *PostPostgresStorage) ListPosts(ctx context.Context, filter post.Filter, limit, offset int) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := applyFilter(s.db, filter).
		Preload("Author").
		Preload("Group").
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}
	return posts, nil
}

func applyFilter(q *gorm.DB, filter post.Filter) *gorm.DB {
	if filter.GroupID != nil {
		q = q.Where("group_id = ?", *filter.GroupID)
	}
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.FollowerID != nil {
		q = q.Where("author_id IN (SELECT author_id FROM follows WHERE user_id = ?)", *filter.FollowerID)
	}
	return q
}
