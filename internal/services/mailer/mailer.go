// Package services содержит отправку письма подтверждения электронной почты.
// Вызывается обработчиками в отдельной горутине после ответа клиенту:
// ошибка отправки логируется и не влияет на исходный запрос.
package services

import (
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	jwtlib "github.com/andrusoleg/contacts-api/internal/lib/jwt"
	"github.com/andrusoleg/contacts-api/internal/lib/smtp"
)

const verificationTemplate = `<html>
<body>
<p>Здравствуйте, {{.Username}}!</p>
<p>Чтобы подтвердить адрес электронной почты, перейдите по ссылке:</p>
<p><a href="{{.Host}}/api/v1/auth/confirmed_email/{{.Token}}">Подтвердить почту</a></p>
<p>Если вы не регистрировались, просто проигнорируйте это письмо.</p>
</body>
</html>`

// MailerService отправляет письма подтверждения через SMTP транспорт.
type MailerService struct {
	transport smtp.TransportInterface
	jwtMaker  jwtlib.Maker
	tmpl      *template.Template
	log       *slog.Logger
}

// NewMailerService создает новый экземпляр MailerService.
func NewMailerService(transport smtp.TransportInterface, jwtMaker jwtlib.Maker, log *slog.Logger) *MailerService {
	return &MailerService{
		transport: transport,
		jwtMaker:  jwtMaker,
		tmpl:      template.Must(template.New("verification").Parse(verificationTemplate)),
		log:       log,
	}
}

// SendVerificationEmail выпускает токен подтверждения, рендерит HTML-шаблон
// и отправляет письмо на указанный адрес. host — базовый URL сервиса,
// из которого собирается ссылка подтверждения.
func (s *MailerService) SendVerificationEmail(email, username, host string) error {
	token, err := s.jwtMaker.GenerateVerificationToken(email)
	if err != nil {
		return fmt.Errorf("generate verification token: %w", err)
	}

	var body strings.Builder
	err = s.tmpl.Execute(&body, map[string]string{
		"Username": username,
		"Host":     strings.TrimSuffix(host, "/"),
		"Token":    token,
	})
	if err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}

	return s.sendEmail(email, "Confirm your email", body.String())
}

func (s *MailerService) sendEmail(to, subject, htmlBody string) error {
	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("connect to smtp: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	from, fromName := s.transport.GetSMTPFrom()
	if err = client.Mail(from); err != nil {
		return fmt.Errorf("smtp MAIL failed: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", fromName, from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if _, err = w.Write([]byte(msg.String())); err != nil {
		return fmt.Errorf("write message body: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("close message body: %w", err)
	}

	if err = client.Quit(); err != nil {
		s.log.Warn("smtp QUIT failed", slog.Any("err", err))
	}
	s.log.Info("verification email sent", slog.String("to", to))
	return nil
}
