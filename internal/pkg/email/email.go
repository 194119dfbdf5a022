package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendContactAcknowledgement(toEmail, toName, subject string) error
	SendDecisionEmail(toEmail, toName, paperTitle, status string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for links in messages
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
	send   func(toEmail string, msg []byte) error
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	s := &EmailServiceImpl{
		config: config,
		logger: logger,
	}
	s.send = s.deliver
	return s
}

// configured reports whether SMTP credentials are present; without them mails are only logged
func (s *EmailServiceImpl) configured() bool {
	return s.config.Username != "" && s.config.Password != ""
}

// SendContactAcknowledgement confirms receipt of a contact form message
func (s *EmailServiceImpl) SendContactAcknowledgement(toEmail, toName, subject string) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - contact acknowledgement not sent")
		return nil
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Sayın %s,</p>
				<p>"%s" konulu mesajınız bize ulaşmıştır. En kısa sürede size dönüş yapacağız.</p>
				<p>Saygılarımızla,<br>Sempozyum Düzenleme Kurulu</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(toName), html.EscapeString(subject))

	return s.sendHTMLEmail(toEmail, "Mesajınız alındı", body)
}

// SendDecisionEmail informs an author about the final decision on their paper
func (s *EmailServiceImpl) SendDecisionEmail(toEmail, toName, paperTitle, status string) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("status", status).
			Msg("SMTP credentials not configured - decision email not sent")
		return nil
	}

	decision := "reddedilmiştir"
	if status == "ACCEPTED" {
		decision = "kabul edilmiştir"
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Sayın %s,</p>
				<p>"%s" başlıklı bildiriniz hakem değerlendirmesi sonucunda <strong>%s</strong>.</p>
				<p>Ayrıntılar için: <a href="%s">%s</a></p>
				<p>Saygılarımızla,<br>Sempozyum Düzenleme Kurulu</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(toName), html.EscapeString(paperTitle), decision, s.config.BaseURL, s.config.BaseURL)

	return s.sendHTMLEmail(toEmail, "Bildiri değerlendirme sonucu", body)
}

func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	if err := s.send(toEmail, s.buildMessage(toEmail, subject, htmlBody)); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		return err
	}
	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}

// buildMessage renders headers in a fixed order followed by the HTML body
func (s *EmailServiceImpl) buildMessage(toEmail, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", toEmail)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func (s *EmailServiceImpl) deliver(toEmail string, message []byte) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, message); err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
