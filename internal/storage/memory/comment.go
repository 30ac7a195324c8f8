package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
)

type CommentMemoryStorage struct {
	mu          sync.Mutex
	comments    map[uint]*models.Comment
	nextID      uint
	postStorage post.PostStorage // Хранилище постов (внедрение зависимости (DI))
	userStorage user.UserStorage
}

func NewCommentMemoryStorage(postStore post.PostStorage, userStore user.UserStorage) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments:    make(map[uint]*models.Comment),
		nextID:      1,
		postStorage: postStore,
		userStorage: userStore,
	}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	if _, err := s.postStorage.GetPostByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	author, err := s.userStorage.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	s.mu.Lock()
	c := &models.Comment{
		ID:        s.nextID,
		Text:      text,
		CreatedAt: time.Now(),
		PostID:    postID,
		AuthorID:  authorID,
	}
	s.nextID++
	s.comments[c.ID] = c
	copied := *c
	s.mu.Unlock()

	copied.Author = *author
	return &copied, nil
}

func (s *CommentMemoryStorage) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	s.mu.Lock()
	results := []*models.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			copied := *c
			results = append(results, &copied)
		}
	}
	s.mu.Unlock()

	// Сортируем по CreatedAt (по возрастанию) (и по ID в случае одинакового времени создания)
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].ID < results[j].ID
		}
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})

	for _, c := range results {
		if author, err := s.userStorage.GetUserByID(ctx, c.AuthorID); err == nil {
			c.Author = *author
		}
	}

	return results, nil
}

// Count - общее число комментариев (для тестов)
func (s *CommentMemoryStorage) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}
