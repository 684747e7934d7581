package email

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"

	"github.com/jordan-wright/email"

	"github.com/chuta/ejijikobi/models"
)

// Sender delivers order notifications over SMTP. Every Send* method is
// best effort: delivery failures are logged and swallowed so a mail
// outage never fails an order flow.
type Sender struct {
	host string
	port string
	from string
	auth smtp.Auth
}

// NewSenderFromEnv builds a Sender from SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASSWORD and EMAIL_FROM. Returns nil when SMTP is not configured,
// which callers treat as "emails disabled".
func NewSenderFromEnv() *Sender {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "Ejiji Kobi <orders@ejijikobi.com>"
	}
	var auth smtp.Auth
	if user := os.Getenv("SMTP_USER"); user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), host)
	}
	return &Sender{host: host, port: port, from: from, auth: auth}
}

func naira(minor int64) string {
	return fmt.Sprintf("₦%d.%02d", minor/100, minor%100)
}

// SendOrderConfirmation mails the customer after a successful placement.
func (s *Sender) SendOrderConfirmation(order models.Order) {
	if s == nil || order.ShippingAddress.Email == "" {
		return
	}

	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "<div><p>%s x %d</p><p>Size: %s</p><p>Price: %s</p></div>",
			item.Product.Name, item.Quantity, item.Size, naira(item.Price))
	}

	body := fmt.Sprintf(`
		<h1>Thank you for your order!</h1>
		<p>Your order #%s has been confirmed and is being processed.</p>
		<h2>Order Details</h2>
		<p>Order Status: %s</p>
		<p>Payment Method: %s</p>
		<p>Shipping Method: %s</p>
		<h3>Items</h3>
		%s
		<h3>Order Summary</h3>
		<p>Subtotal: %s</p>
		<p>Shipping: %s</p>
		<p>Total: %s</p>`,
		order.ID, order.Status, order.PaymentMethod, order.ShippingMethod,
		items.String(), naira(order.Subtotal), naira(order.ShippingFee), naira(order.Total))

	s.send(order.ShippingAddress.Email, fmt.Sprintf("Order Confirmed - #%s", order.ID), body)
}

// SendStatusUpdate mails the customer when an order changes status,
// including tracking details once present.
func (s *Sender) SendStatusUpdate(order models.Order) {
	if s == nil || order.ShippingAddress.Email == "" {
		return
	}

	tracking := ""
	if order.TrackingNumber != "" {
		tracking = fmt.Sprintf(
			"<p>Tracking Number: %s</p><p>Track your order: <a href=%q>Click here</a></p>",
			order.TrackingNumber, order.TrackingURL)
	}

	body := fmt.Sprintf(`
		<h1>Order Status Update</h1>
		<p>Your order #%s has been updated.</p>
		<p>New Status: %s</p>
		%s
		<h3>Need Help?</h3>
		<p>If you have any questions about your order, please contact our customer service.</p>`,
		order.ID, order.Status, tracking)

	s.send(order.ShippingAddress.Email, fmt.Sprintf("Order Status Update - #%s", order.ID), body)
}

func (s *Sender) send(to, subject, body string) {
	e := email.NewEmail()
	e.From = s.from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(body)
	if err := e.Send(s.host+":"+s.port, s.auth); err != nil {
		log.Println("failed to send email:", err)
	}
}
