package middleware

import (
	"context"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
)

type ctxKey string

const (
	ctxAccountID ctxKey = "account_id"
	ctxRole      ctxKey = "role"
)

func WithCaller(ctx context.Context, accountID, role string) context.Context {
	ctx = context.WithValue(ctx, ctxAccountID, accountID)
	ctx = context.WithValue(ctx, ctxRole, role)
	return ctx
}

func AccountIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxAccountID).(string)
	return v, ok && v != ""
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxRole).(string)
	return v, ok && v != ""
}

// CallerFromContext assembles the caller identity injected by Auth.
func CallerFromContext(ctx context.Context) (account.Caller, bool) {
	id, ok := AccountIDFromContext(ctx)
	if !ok {
		return account.Caller{}, false
	}
	role, ok := RoleFromContext(ctx)
	if !ok {
		return account.Caller{}, false
	}
	return account.Caller{AccountID: id, Role: role}, true
}
