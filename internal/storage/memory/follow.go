package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/models"
)

type followKey struct {
	userID   uint
	authorID uint
}

type FollowMemoryStorage struct {
	mu      sync.Mutex
	follows map[followKey]*models.Follow
	nextID  uint
}

func NewFollowMemoryStorage() *FollowMemoryStorage {
	return &FollowMemoryStorage{
		follows: make(map[followKey]*models.Follow),
		nextID:  1,
	}
}

func (s *FollowMemoryStorage) Follow(ctx context.Context, userID, authorID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{userID: userID, authorID: authorID}
	if _, exists := s.follows[key]; exists {
		return false, nil
	}

	s.follows[key] = &models.Follow{
		ID:        s.nextID,
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	s.nextID++

	return true, nil
}

func (s *FollowMemoryStorage) Unfollow(ctx context.Context, userID, authorID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{userID: userID, authorID: authorID}
	if _, exists := s.follows[key]; !exists {
		return false, nil
	}

	delete(s.follows, key)
	return true, nil
}

func (s *FollowMemoryStorage) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.follows[followKey{userID: userID, authorID: authorID}]
	return exists, nil
}

func (s *FollowMemoryStorage) FollowedAuthorIDs(ctx context.Context, userID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []uint{}
	for key := range s.follows {
		if key.userID == userID {
			ids = append(ids, key.authorID)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Len - число ребер подписки (для тестов)
func (s *FollowMemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.follows)
}
