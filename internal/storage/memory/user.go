package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"

	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	mu       sync.Mutex
	users    map[uint]*models.User
	byName   map[string]uint
	nextID   uint
	hashCost int
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:    make(map[uint]*models.User),
		byName:   make(map[string]uint),
		nextID:   1,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *UserMemoryStorage) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	// хешируем до блокировки - bcrypt медленный
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[username]; exists {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrAlreadyExists)
	}

	user := &models.User{
		ID:        s.nextID,
		Username:  username,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
	}
	s.nextID++

	s.users[user.ID] = user
	s.byName[username] = user.ID

	copied := *user
	return &copied, nil
}

func (s *UserMemoryStorage) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	s.mu.Lock()
	id, exists := s.byName[username]
	var user models.User
	if exists {
		user = *s.users[id]
	}
	s.mu.Unlock()

	if !exists {
		return nil, storage.ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, storage.ErrInvalidCredentials
	}

	return &user, nil
}

func (s *UserMemoryStorage) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}

	copied := *user
	return &copied, nil
}

func (s *UserMemoryStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.byName[username]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
	}

	copied := *s.users[id]
	return &copied, nil
}
