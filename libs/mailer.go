package libs

import (
	"bytes"
	"fmt"
	"html/template"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"storefront/models"
	"storefront/utils"
)

type Mailer interface {
	SendOrderConfirmation(order *models.Order) error
}

var orderConfirmationTmpl = template.Must(template.New("order").Funcs(template.FuncMap{
	"money": utils.FormatMoney,
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
    <h2>Order Confirmation</h2>
    <p>Hello {{.FullName}}, thank you for your order!</p>
    <p><strong>Order Number:</strong> {{.OrderNumber}}</p>
    <table style="width: 100%; border-collapse: collapse;">
      {{range .Items}}
      <tr>
        <td>{{.ProductName}}{{if .VariantName}} ({{.VariantName}}){{end}}</td>
        <td>x{{.Quantity}}</td>
        <td style="text-align: right;">{{money .LineTotal $.Currency}}</td>
      </tr>
      {{end}}
    </table>
    <p>Subtotal: {{money .Subtotal .Currency}}<br>
       Shipping: {{money .ShippingFee .Currency}}<br>
       <strong>Total: {{money .Total .Currency}}</strong></p>
    <p>We'll notify you when your order ships.</p>
  </div>
</body>
</html>`))

func RenderOrderConfirmation(order *models.Order) (string, error) {
	var buf bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&buf, order); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) (*SMTPMailer, error) {
	if host == "" || user == "" || pass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}, nil
}

func (s *SMTPMailer) SendOrderConfirmation(order *models.Order) error {
	body, err := RenderOrderConfirmation(order)
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", order.Email)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s", order.OrderNumber))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogMailer stands in when SMTP is not configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendOrderConfirmation(order *models.Order) error {
	m.log.Info("order confirmation (smtp disabled)",
		zap.String("order_number", order.OrderNumber),
		zap.String("email", order.Email),
	)
	return nil
}
