package comment

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

type CommentStorage interface {
	CreateComment(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error)
	// ListComments возвращает комментарии поста от старых к новым
	ListComments(ctx context.Context, postID uint) ([]*models.Comment, error)
}
