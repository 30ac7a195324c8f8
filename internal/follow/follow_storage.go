package follow

import "context"

// FollowStorage хранит подписки. Follow и Unfollow идемпотентны:
// флаг показывает, изменилось ли что-то.
type FollowStorage interface {
	Follow(ctx context.Context, userID, authorID uint) (bool, error)
	Unfollow(ctx context.Context, userID, authorID uint) (bool, error)
	IsFollowing(ctx context.Context, userID, authorID uint) (bool, error)
	FollowedAuthorIDs(ctx context.Context, userID uint) ([]uint, error)
}
