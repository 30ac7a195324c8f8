package main

import (
	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/yatube/internal/blog"
	"github.com/VitaminP8/yatube/internal/comment"
	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/logging"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/storage/memory"
	"github.com/VitaminP8/yatube/internal/storage/postgres"
	"github.com/VitaminP8/yatube/internal/user"
)

type stores struct {
	users    user.UserStorage
	groups   group.GroupStorage
	posts    post.PostStorage
	comments comment.CommentStorage
	follows  follow.FollowStorage
	db       *gorm.DB
}

// openStores выбирает реализацию хранилищ; для реляционных выполняет миграции
func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.Storage {
	case config.StoragePostgres, config.StorageSQLite:
		db, err := postgres.InitDB(cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			_ = postgres.CloseDB(db)
			return nil, err
		}
		logging.Debug().Msg("Миграции применены")

		logging.Info().Str("storage", cfg.Storage).Msg("Используется реляционное хранилище")
		return &stores{
			users:    postgres.NewUserPostgresStorage(db),
			groups:   postgres.NewGroupPostgresStorage(db),
			posts:    postgres.NewPostPostgresStorage(db),
			comments: postgres.NewCommentPostgresStorage(db),
			follows:  postgres.NewFollowPostgresStorage(db),
			db:       db,
		}, nil

	default:
		logging.Warn().Msg("Используется in-memory хранилище: данные пропадут после остановки")
		users := memory.NewUserMemoryStorage()
		groups := memory.NewGroupMemoryStorage()
		follows := memory.NewFollowMemoryStorage()
		posts := memory.NewPostMemoryStorage(users, groups, follows)

		return &stores{
			users:    users,
			groups:   groups,
			posts:    posts,
			comments: memory.NewCommentMemoryStorage(posts, users),
			follows:  follows,
		}, nil
	}
}

func (s *stores) service(images blog.ImageSaver) *blog.Service {
	return &blog.Service{
		PostStore:    s.posts,
		CommentStore: s.comments,
		UserStore:    s.users,
		GroupStore:   s.groups,
		FollowStore:  s.follows,
		Images:       images,
	}
}

func (s *stores) Close() error {
	if s.db == nil {
		return nil
	}
	return postgres.CloseDB(s.db)
}
