package notification

import (
	"context"

	warrantydomain "warranto-backend/internal/warranty/domain"
)

// EmailChannel delivers one aggregated expiry digest to a tenant's contact
// address. Delivery is attempted exactly once per call.
type EmailChannel interface {
	SendExpiryAlert(ctx context.Context, to string, items []warrantydomain.ExpiringWarranty, alertThreshold int) error
}

// PushChannel multicasts one expiring-warranty notification to a tenant's
// device tokens. Tokens the provider rejected are returned to the caller so
// a cleanup policy can be applied outside this channel.
type PushChannel interface {
	SendExpiryAlert(ctx context.Context, tokens []string, item warrantydomain.ExpiringWarranty) (failedTokens []string, err error)
}
