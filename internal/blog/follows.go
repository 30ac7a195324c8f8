package blog

import (
	"context"

	"github.com/VitaminP8/yatube/internal/logging"
	"github.com/VitaminP8/yatube/models"
)

// Follow подписывает viewer на автора. Повторная подписка ничего не меняет.
// Самоподписка запрещена сознательно, хотя модель Follow ее допускает:
// возвращается ErrSelfFollow и строка не создается. Автор возвращается в любом случае.
func (s *Service) Follow(ctx context.Context, viewerID uint, username string) (*models.User, error) {
	author, err := s.UserStore.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author.ID == viewerID {
		return author, ErrSelfFollow
	}

	created, err := s.FollowStore.Follow(ctx, viewerID, author.ID)
	if err != nil {
		return nil, err
	}
	if created {
		logging.Ctx(ctx).Info().Uint("user_id", viewerID).Uint("author_id", author.ID).Msg("follow created")
	}
	return author, nil
}

// Unfollow удаляет подписку, если она есть
func (s *Service) Unfollow(ctx context.Context, viewerID uint, username string) (*models.User, error) {
	author, err := s.UserStore.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	removed, err := s.FollowStore.Unfollow(ctx, viewerID, author.ID)
	if err != nil {
		return nil, err
	}
	if removed {
		logging.Ctx(ctx).Info().Uint("user_id", viewerID).Uint("author_id", author.ID).Msg("follow removed")
	}
	return author, nil
}
