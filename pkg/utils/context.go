package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const ViewIDKey contextKey = "view_id"

func GetViewIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	viewIDVal := ctx.Value(ViewIDKey)
	if viewIDVal == nil {
		return uuid.Nil, false
	}

	viewID, ok := viewIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}

	return viewID, true
}

func SetViewContext(ctx context.Context, viewID uuid.UUID) context.Context {
	return context.WithValue(ctx, ViewIDKey, viewID)
}
