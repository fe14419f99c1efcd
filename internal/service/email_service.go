package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/brasscraft-shop/internal/config"
	"github.com/brasscraft-shop/internal/constants"
	"github.com/brasscraft-shop/internal/models"
)

// EmailService 邮件通知服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务实例
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 判断邮件服务是否可用
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// SendOrderPlacedEmail 发送下单确认邮件（发往下单时的收件邮箱快照）
func (s *EmailService) SendOrderPlacedEmail(order *models.Order) error {
	if order == nil {
		return ErrInvalidInput
	}
	subject := fmt.Sprintf("Order %s confirmed", order.OrderNo)

	var body bytes.Buffer
	fmt.Fprintf(&body, "Dear %s,\n\n", order.RecipientName)
	fmt.Fprintf(&body, "Thank you for your order %s placed on %s.\n\n", order.OrderNo, order.CreatedAt.Format("02 Jan 2006"))
	for _, item := range order.Items {
		fmt.Fprintf(&body, "  %s x%d  %s %s\n", item.ProductName, item.Quantity, constants.SiteCurrency, item.TotalPrice.String())
	}
	fmt.Fprintf(&body, "\nSubtotal: %s %s\n", constants.SiteCurrency, order.SubtotalAmount.String())
	if order.DiscountAmount.Decimal.IsPositive() {
		fmt.Fprintf(&body, "Discount: -%s %s", constants.SiteCurrency, order.DiscountAmount.String())
		if order.CouponCode != "" {
			fmt.Fprintf(&body, " (%s)", order.CouponCode)
		}
		body.WriteString("\n")
	}
	fmt.Fprintf(&body, "Total: %s %s\n\n", constants.SiteCurrency, order.TotalAmount.String())
	fmt.Fprintf(&body, "Shipping to:\n%s\n%s\n%s %s, %s\n\n", order.RecipientName, order.Street, order.City, order.Zip, order.Country)
	body.WriteString("We will let you know when your order ships.\n")

	return s.sendTextEmail(order.RecipientEmail, subject, body.String())
}

// SendOrderPlacedAdminEmail 发送新订单提醒到店铺管理员邮箱
func (s *EmailService) SendOrderPlacedAdminEmail(order *models.Order) error {
	if order == nil {
		return ErrInvalidInput
	}
	if s == nil || s.cfg == nil || strings.TrimSpace(s.cfg.AdminEmail) == "" {
		return ErrEmailServiceNotConfigured
	}
	subject := fmt.Sprintf("New order %s", order.OrderNo)

	var body bytes.Buffer
	body.WriteString("A new order has been placed.\n\n")
	fmt.Fprintf(&body, "Order: %s\n", order.OrderNo)
	fmt.Fprintf(&body, "Customer: %s <%s>, %s\n\n", order.RecipientName, order.RecipientEmail, order.RecipientPhone)
	for _, item := range order.Items {
		fmt.Fprintf(&body, "  %s x%d  %s %s\n", item.ProductName, item.Quantity, constants.SiteCurrency, item.TotalPrice.String())
	}
	if order.DiscountAmount.Decimal.IsPositive() {
		fmt.Fprintf(&body, "\nDiscount: -%s %s", constants.SiteCurrency, order.DiscountAmount.String())
		if order.CouponCode != "" {
			fmt.Fprintf(&body, " (%s)", order.CouponCode)
		}
		body.WriteString("\n")
	}
	fmt.Fprintf(&body, "\nTotal: %s %s\n\n", constants.SiteCurrency, order.TotalAmount.String())
	fmt.Fprintf(&body, "Ship to:\n%s\n%s\n%s %s, %s\n", order.RecipientName, order.Street, order.City, order.Zip, order.Country)

	return s.sendTextEmail(s.cfg.AdminEmail, subject, body.String())
}

// SendOrderStatusEmail 发送订单状态变更邮件
func (s *EmailService) SendOrderStatusEmail(order *models.Order, status string) error {
	if order == nil {
		return ErrInvalidInput
	}
	subject := fmt.Sprintf("Order %s %s", order.OrderNo, orderStatusPhrase(status))

	var body bytes.Buffer
	fmt.Fprintf(&body, "Dear %s,\n\n", order.RecipientName)
	fmt.Fprintf(&body, "Your order %s %s.\n\n", order.OrderNo, orderStatusPhrase(status))
	fmt.Fprintf(&body, "Order total: %s %s\n", constants.SiteCurrency, order.TotalAmount.String())
	body.WriteString("\nThank you for shopping with us.\n")

	return s.sendTextEmail(order.RecipientEmail, subject, body.String())
}

// SendPreorderStatusEmail 发送预订单状态变更邮件
func (s *EmailService) SendPreorderStatusEmail(preorder *models.Preorder, status string) error {
	if preorder == nil {
		return ErrInvalidInput
	}
	subject := fmt.Sprintf("Preorder %s update", preorder.PreorderNo)

	var body bytes.Buffer
	fmt.Fprintf(&body, "Hello,\n\n")
	fmt.Fprintf(&body, "Your custom preorder %s is now %s.\n\n", preorder.PreorderNo, strings.ReplaceAll(status, "_", " "))
	if preorder.Product != nil {
		fmt.Fprintf(&body, "Item: %s", preorder.Product.Name)
		if preorder.VariantName != "" {
			fmt.Fprintf(&body, " (%s)", preorder.VariantName)
		}
		fmt.Fprintf(&body, " x%d\n", preorder.Quantity)
	}
	fmt.Fprintf(&body, "Total: %s %s (advance %s %s)\n", constants.SiteCurrency, preorder.TotalAmount.String(), constants.SiteCurrency, preorder.AdvanceAmount.String())
	if preorder.EstimatedDelivery != nil {
		fmt.Fprintf(&body, "Estimated delivery: %s\n", preorder.EstimatedDelivery.Format("02 Jan 2006"))
	}
	body.WriteString("\nThank you for your patience while we craft your piece.\n")

	return s.sendTextEmail(preorder.ContactEmail, subject, body.String())
}

// SendPasswordResetEmail 发送密码重置邮件
func (s *EmailService) SendPasswordResetEmail(user *models.User, token string) error {
	if user == nil {
		return ErrInvalidInput
	}
	subject := "Reset your password"

	var body bytes.Buffer
	fmt.Fprintf(&body, "Hello %s,\n\n", user.Name)
	body.WriteString("We received a request to reset your password.\n")
	fmt.Fprintf(&body, "Use the following token to set a new password: %s\n\n", token)
	body.WriteString("The token expires in one hour. If you did not request this, you can ignore this email.\n")

	return s.sendTextEmail(user.Email, subject, body.String())
}

// sendTextEmail 发送纯文本邮件
func (s *EmailService) sendTextEmail(to, subject, body string) error {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if strings.TrimSpace(s.cfg.Host) == "" || strings.TrimSpace(s.cfg.From) == "" {
		return ErrEmailServiceNotConfigured
	}
	recipient, err := mail.ParseAddress(strings.TrimSpace(to))
	if err != nil {
		return ErrInvalidEmail
	}

	from := strings.TrimSpace(s.cfg.From)
	msg := buildEmailMessage(buildFromAddress(from, s.cfg.FromName), recipient.Address, subject, body)
	addr := fmt.Sprintf("%s:%d", strings.TrimSpace(s.cfg.Host), s.cfg.Port)

	var auth smtp.Auth
	if strings.TrimSpace(s.cfg.Username) != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, strings.TrimSpace(s.cfg.Host))
	}

	host := strings.TrimSpace(s.cfg.Host)
	recipients := []string{recipient.Address}
	switch {
	case s.cfg.UseSSL:
		err = sendMailWithSSL(addr, auth, host, from, recipients, []byte(msg))
	case s.cfg.UseTLS:
		err = sendMailWithStartTLS(addr, auth, host, from, recipients, []byte(msg))
	default:
		err = sendMailPlain(addr, auth, host, from, recipients, []byte(msg))
	}
	return normalizeEmailSendError(err)
}

func orderStatusPhrase(status string) string {
	switch status {
	case constants.OrderStatusShipped:
		return "has shipped"
	case constants.OrderStatusDelivered:
		return "has been delivered"
	case constants.OrderStatusCancelled:
		return "has been cancelled"
	default:
		return "is being processed"
	}
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
