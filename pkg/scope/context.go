package scope

import (
	"context"

	"alert-srv/internal/model"
)

// GinTenantKey is the gin.Context key under which the auth middleware stores the tenant id.
const GinTenantKey = "scope.tenant_id"

type scopeKey struct{}

func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, sc)
}

func GetScopeFromContext(ctx context.Context) (model.Scope, bool) {
	sc, ok := ctx.Value(scopeKey{}).(model.Scope)
	return sc, ok
}
