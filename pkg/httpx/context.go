package httpx

import "context"

type ctxKey string

// CtxKeyUserID holds the authenticated principal (the client id) once a
// request has passed authentication.
const CtxKeyUserID ctxKey = "user_id"

// WithUserID returns a copy of ctx carrying the authenticated principal.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, id)
}

// UserIDFromContext returns the principal set by WithUserID, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}
