package mail

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"cargodelivery.ru/cargo/internal/outbox"
)

// SmtpSender delivers outbox payloads as multipart/alternative messages
// (plain + html) over plain SMTP.
type SmtpSender struct {
	addr string
	auth smtp.Auth
}

func NewSmtpSender(host string, port int, username, password string) *SmtpSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SmtpSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
	}
}

func (s *SmtpSender) SendEmail(payload outbox.EmailPayload) error {
	msg := buildMessage(payload)
	return smtp.SendMail(s.addr, s.auth, payload.From, payload.To, msg)
}

const boundary = "=-cargo-mail-boundary"

func buildMessage(payload outbox.EmailPayload) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", payload.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(payload.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", payload.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(payload.PlainBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(payload.HtmlBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}
