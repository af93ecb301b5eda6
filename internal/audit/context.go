package audit

import "context"

type userKey struct{}

// WithUser marca o ctx com o usuário autenticado que origina a ação.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

func UserFrom(ctx context.Context) *string {
	id, _ := ctx.Value(userKey{}).(string)
	return Ptr(id)
}
