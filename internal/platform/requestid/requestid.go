package requestid

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const Header = "X-Request-Id"

type ctxKey struct{}

func New() string {
	return uuid.NewString()
}

func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, strings.TrimSpace(id))
}

func From(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}
