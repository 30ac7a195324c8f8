// Package blog - операции сайта поверх хранилищ: ленты, посты, комментарии, подписки.
package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/VitaminP8/yatube/internal/comment"
	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/paginator"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
)

// ErrSelfFollow - подписка на самого себя не создается
var ErrSelfFollow = errors.New("cannot follow yourself")

// AuthorizationError - пользователь не автор поста
type AuthorizationError struct {
	UserID uint
	PostID uint
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("user %d is not the author of post %d", e.UserID, e.PostID)
}

// ImageSaver сохраняет картинку и возвращает относительный путь
type ImageSaver interface {
	Save(upload *media.Upload) (string, error)
}

type Service struct {
	PostStore    post.PostStorage
	CommentStore comment.CommentStorage
	UserStore    user.UserStorage
	GroupStore   group.GroupStorage
	FollowStore  follow.FollowStorage
	Images       ImageSaver
	PerPage      int
}

type Feed struct {
	Posts []*models.Post
	Page  paginator.Page
}

func (s *Service) perPage() int {
	if s.PerPage > 0 {
		return s.PerPage
	}
	return paginator.PostsPerPage
}

func (s *Service) feed(ctx context.Context, filter post.Filter, rawPage string) (*Feed, error) {
	total, err := s.PostStore.CountPosts(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := paginator.Resolve(total, s.perPage(), rawPage)
	posts, err := s.PostStore.ListPosts(ctx, filter, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	return &Feed{Posts: posts, Page: page}, nil
}

// IndexFeed - все посты
func (s *Service) IndexFeed(ctx context.Context, rawPage string) (*Feed, error) {
	return s.feed(ctx, post.Filter{}, rawPage)
}

func (s *Service) GroupFeed(ctx context.Context, slug, rawPage string) (*models.Group, *Feed, error) {
	g, err := s.GroupStore.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	feed, err := s.feed(ctx, post.Filter{GroupID: &g.ID}, rawPage)
	if err != nil {
		return nil, nil, err
	}
	return g, feed, nil
}

type Profile struct {
	Author *models.User
	Feed   *Feed
	// Following - зритель подписан на автора; для анонима всегда false
	Following bool
	PostCount int
}

// ProfileFeed - посты автора; viewerID 0 - аноним
func (s *Service) ProfileFeed(ctx context.Context, username string, viewerID uint, rawPage string) (*Profile, error) {
	author, err := s.UserStore.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	feed, err := s.feed(ctx, post.Filter{AuthorID: &author.ID}, rawPage)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 {
		following, err = s.FollowStore.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &Profile{
		Author:    author,
		Feed:      feed,
		Following: following,
		PostCount: feed.Page.Total,
	}, nil
}

// FollowFeed - посты авторов, на которых подписан пользователь
func (s *Service) FollowFeed(ctx context.Context, viewerID uint, rawPage string) (*Feed, error) {
	return s.feed(ctx, post.Filter{FollowerID: &viewerID}, rawPage)
}

func (s *Service) Groups(ctx context.Context) ([]*models.Group, error) {
	return s.GroupStore.ListGroups(ctx)
}
