package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	warrantydomain "warranto-backend/internal/warranty/domain"
	"warranto-backend/pkg/mailer"
)

// expiryEmailSender renders and sends the aggregated warranty digest email
type expiryEmailSender struct {
	mailer *mailer.Mailer
}

// NewExpiryEmailSender creates an EmailChannel backed by the SMTP mailer
func NewExpiryEmailSender(m *mailer.Mailer) EmailChannel {
	return &expiryEmailSender{mailer: m}
}

func (s *expiryEmailSender) SendExpiryAlert(ctx context.Context, to string, items []warrantydomain.ExpiringWarranty, alertThreshold int) error {
	if to == "" || len(items) == 0 {
		return fmt.Errorf("invalid parameters: recipient and items are required")
	}

	subject := fmt.Sprintf("⚠️ %d %s Expiring Soon", len(items), pluralWarranty(len(items), true))
	text := renderExpiryEmailText(items, alertThreshold)
	html := renderExpiryEmailHTML(items, alertThreshold)

	return s.mailer.Send(ctx, to, subject, text, html)
}

func renderExpiryEmailText(items []warrantydomain.ExpiringWarranty, alertThreshold int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Warranty Expiry Alert\n\nYou have %d %s expiring within the next %d days:\n\n",
		len(items), pluralWarranty(len(items), false), alertThreshold)
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s) - Expires in %d days\n",
			item.ProductName, retailerOrNA(item.Retailer), item.DaysRemaining)
	}
	return b.String()
}

func renderExpiryEmailHTML(items []warrantydomain.ExpiringWarranty, alertThreshold int) string {
	var rows strings.Builder
	for _, item := range items {
		fmt.Fprintf(&rows, `
      <tr>
        <td style="padding: 12px; border-bottom: 1px solid #e5e7eb;"><strong>%s</strong></td>
        <td style="padding: 12px; border-bottom: 1px solid #e5e7eb;">%s</td>
        <td style="padding: 12px; border-bottom: 1px solid #e5e7eb; color: #f59e0b;"><strong>%d days</strong></td>
        <td style="padding: 12px; border-bottom: 1px solid #e5e7eb;">%s</td>
      </tr>`,
			htmlEscape(item.ProductName),
			htmlEscape(retailerOrNA(item.Retailer)),
			item.DaysRemaining,
			item.ResolvedExpiryDate.Format("Jan 2, 2006"))
	}

	verb := "warranties are"
	if len(items) == 1 {
		verb = "warranty is"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f3f4f6;">
  <div style="max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 8px; overflow: hidden;">
    <div style="background: linear-gradient(135deg, #f59e0b 0%%, #d97706 100%%); padding: 30px; text-align: center;">
      <h1 style="color: #ffffff; margin: 0; font-size: 28px;">⚠️ Warranty Alert</h1>
      <p style="color: rgba(255,255,255,0.9); margin: 10px 0 0 0; font-size: 16px;">
        You have %d %s expiring soon
      </p>
    </div>
    <div style="padding: 30px;">
      <p style="color: #374151; font-size: 16px; line-height: 1.6;">
        This is a friendly reminder that the following %s expiring within the next <strong>%d days</strong>:
      </p>
      <table style="width: 100%%; border-collapse: collapse; margin: 20px 0; border: 1px solid #e5e7eb;">
        <thead>
          <tr style="background-color: #f9fafb;">
            <th style="padding: 12px; text-align: left; color: #6b7280;">Product</th>
            <th style="padding: 12px; text-align: left; color: #6b7280;">Retailer</th>
            <th style="padding: 12px; text-align: left; color: #6b7280;">Days Left</th>
            <th style="padding: 12px; text-align: left; color: #6b7280;">Expires On</th>
          </tr>
        </thead>
        <tbody>%s
        </tbody>
      </table>
      <p style="color: #374151; font-size: 16px; line-height: 1.6;">
        Login to <strong>Warranto</strong> to view full details and manage your warranties.
      </p>
    </div>
    <div style="background-color: #f9fafb; padding: 20px; text-align: center; border-top: 1px solid #e5e7eb;">
      <p style="color: #6b7280; font-size: 12px; margin: 0;">
        You're receiving this email because you enabled warranty alerts in Warranto.
      </p>
      <p style="color: #6b7280; font-size: 12px; margin: 8px 0 0 0;">
        © %d Warranto - Warranty Tracking Made Simple
      </p>
    </div>
  </div>
</body>
</html>`,
		len(items), pluralWarranty(len(items), false), verb, alertThreshold, rows.String(), time.Now().Year())
}

func pluralWarranty(n int, title bool) string {
	switch {
	case n == 1 && title:
		return "Warranty"
	case n == 1:
		return "warranty"
	case title:
		return "Warranties"
	default:
		return "warranties"
	}
}

func retailerOrNA(retailer string) string {
	if retailer == "" {
		return "N/A"
	}
	return retailer
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
