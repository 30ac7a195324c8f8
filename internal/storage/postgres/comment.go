package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
)

type CommentPostgresStorage struct {
	db *gorm.DB
}

func NewCommentPostgresStorage(db *gorm.DB) *CommentPostgresStorage {
	return &CommentPostgresStorage{db: db}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	var p models.Post
	err := s.db.First(&p, postID).Error
	if err != nil {
		return nil, wrapNotFound(err, "post %d not found", postID)
	}

	var author models.User
	err = s.db.First(&author, authorID).Error
	if err != nil {
		return nil, wrapNotFound(err, "author %d not found", authorID)
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}

	err = s.db.Set("gorm:save_associations", false).Create(comment).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	comment.Author = author
	return comment, nil
}

func (s *CommentPostgresStorage) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}
	return comments, nil
}

