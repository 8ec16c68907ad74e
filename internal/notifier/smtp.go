package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"ebuy-be/internal/logger"
	"ebuy-be/internal/metrics"

	"go.uber.org/zap"
)

// SMTPNotifier delivers order confirmations over plain SMTP. Delivery
// failures are reported to the caller but must never abort a
// committed checkout.
type SMTPNotifier struct {
	addr string
	from string
}

func NewSMTPNotifier(host, port, from string) *SMTPNotifier {
	return &SMTPNotifier{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

func (n *SMTPNotifier) SendOrderConfirmation(ctx context.Context, email OrderEmail) error {
	log := logger.FromCtx(ctx).With(
		zap.String("notifier", "smtp"),
		zap.String("order_id", email.OrderID.String()),
	)

	buyerMsg := n.buildMessage(
		email.BuyerEmail,
		fmt.Sprintf("Order confirmation %s", email.OrderID),
		buyerBody(email),
	)
	sellerMsg := n.buildMessage(
		email.SellerEmail,
		fmt.Sprintf("You have a new order %s", email.OrderID),
		sellerBody(email),
	)

	var firstErr error
	for to, msg := range map[string][]byte{
		email.BuyerEmail:  buyerMsg,
		email.SellerEmail: sellerMsg,
	} {
		if err := smtp.SendMail(n.addr, nil, n.from, []string{to}, msg); err != nil {
			log.Warn("order email failed",
				zap.String("to", to),
				zap.Error(err),
			)
			metrics.EmailsSent.WithLabelValues("error").Inc()
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		metrics.EmailsSent.WithLabelValues("sent").Inc()
	}

	return firstErr
}

func (n *SMTPNotifier) buildMessage(to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func buyerBody(email OrderEmail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", email.BuyerName)
	fmt.Fprintf(&b, "Thanks for your purchase. Order %s is confirmed.\r\n\r\n", email.OrderID)
	writeItems(&b, email)
	fmt.Fprintf(&b, "\r\nTotal: %s\r\n", email.TotalAmount.StringFixed(2))
	return b.String()
}

func sellerBody(email OrderEmail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", email.SellerName)
	fmt.Fprintf(&b, "You sold items in order %s.\r\n\r\n", email.OrderID)
	writeItems(&b, email)
	fmt.Fprintf(&b, "\r\nOrder total: %s\r\n", email.TotalAmount.StringFixed(2))
	return b.String()
}

func writeItems(b *strings.Builder, email OrderEmail) {
	for _, it := range email.Items {
		fmt.Fprintf(b, "  %dx %s @ %s\r\n", it.Quantity, it.Title, it.Price.StringFixed(2))
	}
}
