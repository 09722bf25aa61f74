package middleware

import (
	"alert-srv/pkg/log"
	"alert-srv/pkg/scope"
)

// Middleware holds what the authenticated route group needs.
type Middleware struct {
	l      log.Logger
	tokens scope.Manager
}

func New(l log.Logger, tokens scope.Manager) Middleware {
	return Middleware{l: l, tokens: tokens}
}
