package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

type GroupMemoryStorage struct {
	mu     sync.Mutex
	groups map[uint]*models.Group
	bySlug map[string]uint
	nextID uint
}

func NewGroupMemoryStorage() *GroupMemoryStorage {
	return &GroupMemoryStorage{
		groups: make(map[uint]*models.Group),
		bySlug: make(map[string]uint),
		nextID: 1,
	}
}

func (s *GroupMemoryStorage) CreateGroup(ctx context.Context, title, slug, description string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bySlug[slug]; exists {
		return nil, fmt.Errorf("group %s: %w", slug, storage.ErrAlreadyExists)
	}

	group := &models.Group{
		ID:          s.nextID,
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	s.nextID++

	s.groups[group.ID] = group
	s.bySlug[slug] = group.ID

	copied := *group
	return &copied, nil
}

func (s *GroupMemoryStorage) GetGroupByID(ctx context.Context, id uint) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, exists := s.groups[id]
	if !exists {
		return nil, fmt.Errorf("group %d: %w", id, storage.ErrNotFound)
	}

	copied := *group
	return &copied, nil
}

func (s *GroupMemoryStorage) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.bySlug[slug]
	if !exists {
		return nil, fmt.Errorf("group %s: %w", slug, storage.ErrNotFound)
	}

	copied := *s.groups[id]
	return &copied, nil
}

func (s *GroupMemoryStorage) ListGroups(ctx context.Context) ([]*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]*models.Group, 0, len(s.groups))
	for _, group := range s.groups {
		copied := *group
		groups = append(groups, &copied)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Title == groups[j].Title {
			return groups[i].ID < groups[j].ID
		}
		return groups[i].Title < groups[j].Title
	})

	return groups, nil
}
