package middleware

import (
	"context"

	"github.com/crucial707/expense-tracker/internal/models"
)

const holderKey ctxKey = "user_holder"

// userHolder lets RequestLog see the user resolved further down the chain.
type userHolder struct {
	userID int
}

func withUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, holderKey, h)
}

func noteUser(ctx context.Context, u *models.User) {
	if h, ok := ctx.Value(holderKey).(*userHolder); ok && u != nil {
		h.userID = u.ID
	}
}
