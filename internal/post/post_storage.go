package post

import (
	"context"

	"github.com/VitaminP8/yatube/models"
)

// Filter сужает ленту; пустой фильтр - все посты
type Filter struct {
	GroupID    *uint
	AuthorID   *uint
	FollowerID *uint // посты авторов, на которых подписан пользователь
}

// PostStorage отдает посты в порядке created_at DESC, id DESC
// с заполненными Author и Group.
type PostStorage interface {
	CreatePost(ctx context.Context, authorID uint, text string, groupID *uint, image string) (*models.Post, error)
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	UpdatePost(ctx context.Context, id uint, text string, groupID *uint, image string) (*models.Post, error)
	CountPosts(ctx context.Context, filter Filter) (int, error)
	ListPosts(ctx context.Context, filter Filter, limit, offset int) ([]*models.Post, error)
}
