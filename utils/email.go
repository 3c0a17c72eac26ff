package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"sync"

	uuid "github.com/satori/go.uuid"
	gomail "gopkg.in/gomail.v2"

	"girolimob/initializers"
	"girolimob/models"
)

const deletedProductLabel = "Deleted product"

type emailOrderItem struct {
	Title     string
	Quantity  int
	UnitPrice float64
	LineTotal float64
}

type orderEmailData struct {
	Code            string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	TotalPrice      float64
	Items           []emailOrderItem
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Giroli Mob</h1>
  <p>Hello <strong>{{.CustomerName}}</strong>,</p>
  <p>Thank you for your order! Order <strong>#{{.Code}}</strong> has been received
  and will be processed shortly.</p>
  <h2>Order details</h2>
  <p><strong>Name:</strong> {{.CustomerName}}<br>
     <strong>Email:</strong> {{.CustomerEmail}}<br>
     <strong>Phone:</strong> {{.CustomerPhone}}<br>
     <strong>Address:</strong> {{.CustomerAddress}}</p>
  <h2>Items</h2>
  <table width="100%" cellpadding="6">
    {{range .Items}}
    <tr>
      <td>{{.Title}}</td>
      <td align="center">x{{.Quantity}}</td>
      <td align="right">{{printf "%.2f" .UnitPrice}} RON</td>
      <td align="right"><strong>{{printf "%.2f" .LineTotal}} RON</strong></td>
    </tr>
    {{end}}
  </table>
  <p><strong>Total: {{printf "%.2f" .TotalPrice}} RON</strong></p>
  <p>We will contact you shortly to confirm the order and arrange delivery.</p>
  <p>Giroli Mob</p>
</body>
</html>`))

var notificationTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>New order #{{.Code}}</h1>
  <h2>Customer</h2>
  <p><strong>Name:</strong> {{.CustomerName}}<br>
     <strong>Email:</strong> {{.CustomerEmail}}<br>
     <strong>Phone:</strong> {{.CustomerPhone}}</p>
  <h2>Delivery address</h2>
  <p>{{.CustomerAddress}}</p>
  <h2>Items</h2>
  <table width="100%" cellpadding="6">
    {{range .Items}}
    <tr>
      <td>{{.Title}}</td>
      <td align="center">x{{.Quantity}}</td>
      <td align="right">{{printf "%.2f" .UnitPrice}} RON</td>
      <td align="right"><strong>{{printf "%.2f" .LineTotal}} RON</strong></td>
    </tr>
    {{end}}
  </table>
  <p><strong>Total: {{printf "%.2f" .TotalPrice}} RON</strong></p>
</body>
</html>`))

func buildOrderEmailData(order *models.Order, titles map[uuid.UUID]string) orderEmailData {
	data := orderEmailData{
		Code:            order.ShortCode(),
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		TotalPrice:      order.TotalPrice,
	}
	for _, item := range order.Items {
		title, ok := titles[item.ProductID]
		if !ok {
			title = deletedProductLabel
		}
		data.Items = append(data.Items, emailOrderItem{
			Title:     title,
			Quantity:  item.Quantity,
			UnitPrice: item.PriceAtPurchase,
			LineTotal: item.PriceAtPurchase * float64(item.Quantity),
		})
	}
	return data
}

func sendMail(config *initializers.Config, to, replyTo, subject string, tmpl *template.Template, data orderEmailData) error {
	if config.SMTPHost == "" {
		log.Printf("SMTP not configured, skipping email %q to %s", subject, to)
		return nil
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.EmailFrom)
	m.SetHeader("To", to)
	if replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)
	return d.DialAndSend(m)
}

// SendOrderConfirmationEmail mails the customer their order summary.
func SendOrderConfirmationEmail(config *initializers.Config, order *models.Order, titles map[uuid.UUID]string) error {
	data := buildOrderEmailData(order, titles)
	subject := fmt.Sprintf("Order confirmed - #%s", data.Code)
	return sendMail(config, order.CustomerEmail, config.CompanyEmail, subject, confirmationTmpl, data)
}

// SendOrderNotificationEmail alerts the back office about a new order.
func SendOrderNotificationEmail(config *initializers.Config, order *models.Order, titles map[uuid.UUID]string) error {
	data := buildOrderEmailData(order, titles)
	subject := fmt.Sprintf("New order - #%s - %s", data.Code, order.CustomerName)
	return sendMail(config, config.CompanyEmail, order.CustomerEmail, subject, notificationTmpl, data)
}

// DispatchOrderEmails sends both order emails concurrently in the background.
// Failures are logged and swallowed: email must never fail an order.
func DispatchOrderEmails(config *initializers.Config, order models.Order, titles map[uuid.UUID]string) {
	go func() {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := SendOrderConfirmationEmail(config, &order, titles); err != nil {
				log.Printf("Failed to send order confirmation email for #%s: %v", order.ShortCode(), err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := SendOrderNotificationEmail(config, &order, titles); err != nil {
				log.Printf("Failed to send order notification email for #%s: %v", order.ShortCode(), err)
			}
		}()
		wg.Wait()
	}()
}
