package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/rs/zerolog"

	"topichat/internal/domain"
)

// MailerConfig holds the SMTP settings for the admin mailbox. Reports and
// summaries are both sent from and to the admin address.
type MailerConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	AdminEmail string
	AppName    string
}

// Mailer sends report and summary emails over SMTP.
type Mailer struct {
	cfg MailerConfig
	log zerolog.Logger
}

func NewMailer(cfg MailerConfig, log zerolog.Logger) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: log.With().Str("component", "mailer").Logger(),
	}
}

func (m *Mailer) SendReport(ctx context.Context, r *domain.Report) error {
	body, err := renderReportBody(m.cfg.AppName, r)
	if err != nil {
		return fmt.Errorf("render report mail: %w", err)
	}
	subject := fmt.Sprintf("[%s] New Report Received", m.cfg.AppName)
	if err := m.send(ctx, subject, body); err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}
	m.log.Info().Str("report_id", r.ID).Msg("report email sent")
	return nil
}

func (m *Mailer) SendSummary(ctx context.Context, s *domain.Summary) error {
	body, err := renderSummaryBody(m.cfg.AppName, s)
	if err != nil {
		return fmt.Errorf("render summary mail: %w", err)
	}
	subject := fmt.Sprintf("[%s] Activity Summary - %s", m.cfg.AppName, time.Now().Format("2006-01-02"))
	if err := m.send(ctx, subject, body); err != nil {
		return fmt.Errorf("send summary mail: %w", err)
	}
	m.log.Info().Int("total_messages", s.TotalMessages).Msg("summary email sent")
	return nil
}

func (m *Mailer) send(ctx context.Context, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.AdminEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", m.cfg.AdminEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	// net/smtp has no context support; bound the call via a goroutine.
	errCh := make(chan error, 1)
	go func() {
		errCh <- smtp.SendMail(addr, auth, m.cfg.AdminEmail, []string{m.cfg.AdminEmail}, msg.Bytes())
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="background: #f44336; color: white; padding: 12px;">Content Report</h2>
  <p>A user has reported content that may violate community guidelines.</p>
  <table cellpadding="6">
    <tr><td><strong>Report Type</strong></td><td>{{.Report.Type}}</td></tr>
    <tr><td><strong>Target ID</strong></td><td>{{.Report.TargetID}}</td></tr>
    <tr><td><strong>Reason</strong></td><td>{{.Report.Reason}}</td></tr>
    <tr><td><strong>Reporter Session</strong></td><td>{{.Report.SessionID}}</td></tr>
    <tr><td><strong>Reported At</strong></td><td>{{.Report.Timestamp.Format "2006-01-02 15:04:05 MST"}}</td></tr>
  </table>
  <p style="color: #999; font-size: 12px;">This is an automated message from {{.AppName}}</p>
</body>
</html>`))

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1 style="background: #667eea; color: white; padding: 16px;">Activity Summary</h1>
  <table cellpadding="6">
    <tr><td><strong>Total Messages</strong></td><td>{{.Summary.TotalMessages}}</td></tr>
    <tr><td><strong>Topics Created</strong></td><td>{{.Summary.TotalTopics}}</td></tr>
    <tr><td><strong>Reports Received</strong></td><td>{{.Summary.TotalReports}}</td></tr>
    <tr><td><strong>Active Users</strong></td><td>{{.Summary.ActiveUsers}}</td></tr>
  </table>
  <h3>Top Most Active Topics</h3>
  <table cellpadding="6" border="1" style="border-collapse: collapse;">
    <tr><th>Rank</th><th>Topic Name</th><th>Messages</th></tr>
    {{range $i, $t := .Summary.TopTopics}}
    <tr><td>{{inc $i}}</td><td>{{$t.Name}}</td><td>{{$t.MessageCount}}</td></tr>
    {{else}}
    <tr><td colspan="3">No topics this period</td></tr>
    {{end}}
  </table>
  <p style="color: #999; font-size: 12px;">Automated summary from {{.AppName}}</p>
</body>
</html>`))

func renderReportBody(appName string, r *domain.Report) (string, error) {
	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, struct {
		AppName string
		Report  *domain.Report
	}{appName, r})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderSummaryBody(appName string, s *domain.Summary) (string, error) {
	var buf bytes.Buffer
	err := summaryTmpl.Execute(&buf, struct {
		AppName string
		Summary *domain.Summary
	}{appName, s})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
