package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"nps/internal/config"
	"nps/internal/models/db_models"
)

// IMailService sends the workflow notifications. Callers treat delivery as
// best effort.
type IMailService interface {
	NotifyDetractor(ctx context.Context, employee *db_models.User, e *db_models.Evaluation) error
	NotifyRejection(ctx context.Context, employee *db_models.User, e *db_models.Evaluation) error
}

// NewMailService returns an SMTP mailer, or a no-op one when SMTP is not configured.
func NewMailService(cfg config.Config) IMailService {
	if !cfg.SMTP.Enabled() {
		slog.Info("smtp not configured, notifications disabled")
		return noopMailService{}
	}
	return &smtpMailService{
		cfg:        cfg.SMTP,
		appBaseURL: strings.TrimRight(cfg.AppBaseURL, "/"),
		htmlTpl:    template.Must(template.New("html").Parse(htmlTemplate)),
		dialer:     &net.Dialer{Timeout: 10 * time.Second},
	}
}

type noopMailService struct{}

func (noopMailService) NotifyDetractor(context.Context, *db_models.User, *db_models.Evaluation) error {
	return nil
}

func (noopMailService) NotifyRejection(context.Context, *db_models.User, *db_models.Evaluation) error {
	return nil
}

type smtpMailService struct {
	cfg        config.SMTPConfig
	appBaseURL string
	htmlTpl    *template.Template
	dialer     *net.Dialer
}

// ------------------- Public API -------------------

func (s *smtpMailService) NotifyDetractor(ctx context.Context, employee *db_models.User, e *db_models.Evaluation) error {
	intro := fmt.Sprintf("Olá %s, uma avaliação com nota %d foi atribuída a você e precisa de uma resolução.",
		employee.Name, e.Score)
	return s.deliver(ctx, employee.Email, "Nova avaliação de detrator", intro, e.ID)
}

func (s *smtpMailService) NotifyRejection(ctx context.Context, employee *db_models.User, e *db_models.Evaluation) error {
	reason := ""
	if e.RejectionReason != nil {
		reason = *e.RejectionReason
	}
	intro := fmt.Sprintf("Olá %s, sua resolução foi rejeitada. Motivo: %s", employee.Name, reason)
	return s.deliver(ctx, employee.Email, "Resolução rejeitada", intro, e.ID)
}

// ------------------- Rendering -------------------

type emailData struct {
	Title     string
	Intro     string
	ButtonURL string
	AppName   string
	Year      int
}

const htmlTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:32px;background:#f8fafc;font-family:Helvetica,Arial,sans-serif;color:#0f172a">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:12px;padding:32px">
    <h1 style="font-size:22px;margin:0 0 16px">{{.Title}}</h1>
    <p style="line-height:1.6;color:#475569">{{.Intro}}</p>
    {{if .ButtonURL}}<p><a href="{{.ButtonURL}}" style="display:inline-block;padding:12px 24px;background:#2563eb;color:#ffffff;border-radius:8px;text-decoration:none">Abrir avaliação</a></p>{{end}}
    <p style="font-size:12px;color:#94a3b8">© {{.Year}} {{.AppName}}</p>
  </div>
</body>
</html>`

func (s *smtpMailService) render(subject, intro string, evaluationID int64) (string, string, error) {
	data := emailData{
		Title:   subject,
		Intro:   intro,
		AppName: s.cfg.FromName,
		Year:    time.Now().Year(),
	}
	if s.appBaseURL != "" {
		data.ButtonURL = fmt.Sprintf("%s/evaluations/%d", s.appBaseURL, evaluationID)
	}

	var hb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}

	text := intro
	if data.ButtonURL != "" {
		text += "\n\n" + data.ButtonURL
	}
	return hb.String(), text, nil
}

// ------------------- SMTP Send -------------------

func (s *smtpMailService) deliver(ctx context.Context, to, subject, intro string, evaluationID int64) error {
	htmlBody, textBody, err := s.render(subject, intro, evaluationID)
	if err != nil {
		return err
	}

	msg := s.buildMessage(to, subject, htmlBody, textBody)

	c, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// connect opens either an implicit TLS session (port 465) or a plain one
// upgraded with STARTTLS when the server offers it.
func (s *smtpMailService) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	conn, err := s.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if s.cfg.UseSSL {
		conn = tls.Client(conn, tlsCfg)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if s.cfg.UseSSL {
		return c, nil
	}

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err = c.StartTLS(tlsCfg); err != nil {
			c.Close()
			return nil, err
		}
	} else if s.cfg.RequireTLS {
		c.Close()
		return nil, fmt.Errorf("smtp server %s does not support STARTTLS", s.cfg.Host)
	}
	return c, nil
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("nps_%d", time.Now().UnixNano())

	from := s.cfg.From
	if name := strings.TrimSpace(s.cfg.FromName); name != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), s.cfg.From)
	}

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", from)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}
