package auth

import "context"

type contextKey string

const identityKey = contextKey("identity")

// Identity - вошедший пользователь текущего запроса
type Identity struct {
	UserID   uint
	Username string
}

// Сохраняет пользователя в контексте
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, false
	}
	return id, true
}
