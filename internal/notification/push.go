package notification

import (
	"context"
	"fmt"
	"strconv"

	warrantydomain "warranto-backend/internal/warranty/domain"
	"warranto-backend/pkg/fcm"
)

// expiryPushSender multicasts warranty expiry alerts over FCM
type expiryPushSender struct {
	client *fcm.Client
}

// NewExpiryPushSender creates a PushChannel backed by the FCM client
func NewExpiryPushSender(client *fcm.Client) PushChannel {
	return &expiryPushSender{client: client}
}

func (s *expiryPushSender) SendExpiryAlert(ctx context.Context, tokens []string, item warrantydomain.ExpiringWarranty) ([]string, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no device tokens provided")
	}

	body := fmt.Sprintf("%s warranty expires in %d day", item.ProductName, item.DaysRemaining)
	if item.DaysRemaining != 1 {
		body += "s"
	}

	return s.client.SendToDevices(ctx, tokens, fcm.NotificationData{
		Title: "⚠️ Warranty Expiring Soon",
		Body:  body,
		Data: map[string]string{
			"type":           "warranty_expiry",
			"warranty_id":    item.ID,
			"product_name":   item.ProductName,
			"days_remaining": strconv.Itoa(item.DaysRemaining),
			"expiry_date":    item.ResolvedExpiryDate.Format("2006-01-02"),
			"click_action":   "/warranties",
		},
	})
}
