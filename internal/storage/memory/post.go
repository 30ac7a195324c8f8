package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/paginator"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
)

type PostMemoryStorage struct {
	mu     sync.Mutex
	posts  map[uint]*models.Post
	nextID uint

	// зависимости для заполнения Author/Group и ленты подписок (DI)
	users   user.UserStorage
	groups  group.GroupStorage
	follows follow.FollowStorage
	now     func() time.Time
}

func NewPostMemoryStorage(users user.UserStorage, groups group.GroupStorage, follows follow.FollowStorage) *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:   make(map[uint]*models.Post),
		nextID:  1,
		users:   users,
		groups:  groups,
		follows: follows,
		now:     time.Now,
	}
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, authorID uint, text string, groupID *uint, image string) (*models.Post, error) {
	if _, err := s.users.GetUserByID(ctx, authorID); err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	s.mu.Lock()
	p := &models.Post{
		ID:        s.nextID,
		Text:      text,
		CreatedAt: s.now(),
		Image:     image,
		AuthorID:  authorID,
		GroupID:   copyID(groupID),
	}
	s.nextID++
	s.posts[p.ID] = p
	copied := *p
	s.mu.Unlock()

	return s.hydrate(ctx, &copied), nil
}

func (s *PostMemoryStorage) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	p, exists := s.posts[id]
	var copied models.Post
	if exists {
		copied = *p
	}
	s.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}

	return s.hydrate(ctx, &copied), nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, id uint, text string, groupID *uint, image string) (*models.Post, error) {
	s.mu.Lock()
	p, exists := s.posts[id]
	var copied models.Post
	if exists {
		p.Text = text
		p.GroupID = copyID(groupID)
		p.Image = image
		copied = *p
	}
	s.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}

	return s.hydrate(ctx, &copied), nil
}

func (s *PostMemoryStorage) CountPosts(ctx context.Context, filter post.Filter) (int, error) {
	matched, err := s.filtered(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (s *PostMemoryStorage) ListPosts(ctx context.Context, filter post.Filter, limit, offset int) ([]*models.Post, error) {
	matched, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}

	window := paginator.Slice(matched, offset, limit)
	results := make([]*models.Post, 0, len(window))
	for _, p := range window {
		results = append(results, s.hydrate(ctx, p))
	}
	return results, nil
}

// filtered возвращает копии подходящих постов, отсортированные от новых к старым
func (s *PostMemoryStorage) filtered(ctx context.Context, filter post.Filter) ([]*models.Post, error) {
	var authors map[uint]bool
	if filter.FollowerID != nil {
		ids, err := s.follows.FollowedAuthorIDs(ctx, *filter.FollowerID)
		if err != nil {
			return nil, fmt.Errorf("could not get followed authors: %w", err)
		}
		authors = make(map[uint]bool, len(ids))
		for _, id := range ids {
			authors[id] = true
		}
	}

	s.mu.Lock()
	var matched []*models.Post
	for _, p := range s.posts {
		if filter.GroupID != nil && (p.GroupID == nil || *p.GroupID != *filter.GroupID) {
			continue
		}
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if authors != nil && !authors[p.AuthorID] {
			continue
		}
		copied := *p
		matched = append(matched, &copied)
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

// hydrate заполняет Author и Group; вызывается без блокировки s.mu
func (s *PostMemoryStorage) hydrate(ctx context.Context, p *models.Post) *models.Post {
	if author, err := s.users.GetUserByID(ctx, p.AuthorID); err == nil {
		p.Author = *author
	}
	p.Group = nil
	if p.GroupID != nil {
		if g, err := s.groups.GetGroupByID(ctx, *p.GroupID); err == nil {
			p.Group = g
		}
	}
	return p
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
