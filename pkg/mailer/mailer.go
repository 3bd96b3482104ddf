package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"estatehub/pkg/logger"
	"estatehub/pkg/notification"

	"gopkg.in/gomail.v2"
)

type Role string

const (
	RoleSubmitter Role = "submitter"
	RoleCompany   Role = "company"
	RoleAdmin     Role = "admin"
)

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type TokenSealer interface {
	Seal(plaintext string) (string, error)
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

func NewSMTPSender(cfg SMTPConfig) *gomail.Dialer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	if cfg.Port == 465 {
		d.SSL = true
	}
	return d
}

type Config struct {
	FromEmail     string
	FromName      string
	CompanyEmail  string
	AdminEmail    string
	PublicBaseURL string
}

type Result struct {
	Role      Role
	Recipient string
	Sent      bool
	Err       error
}

type Results []Result

func (rs Results) Failed() int {
	n := 0
	for _, r := range rs {
		if !r.Sent {
			n++
		}
	}
	return n
}

func (rs Results) Sent(role Role) bool {
	for _, r := range rs {
		if r.Role == role {
			return r.Sent
		}
	}
	return false
}

type recipient struct {
	role Role
	to   string
}

type Dispatcher struct {
	sender    Sender
	cfg       Config
	sealer    TokenSealer
	templates *templateSet
	log       *logger.Logger
	now       func() time.Time
}

func NewDispatcher(sender Sender, cfg Config, sealer TokenSealer, log *logger.Logger) (*Dispatcher, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Dispatcher{
		sender:    sender,
		cfg:       cfg,
		sealer:    sealer,
		templates: templates,
		log:       log,
		now:       time.Now,
	}, nil
}

// Dispatch sends the submitter, company and admin mails for one form. Each send is
// independent: a failure is logged and recorded, and the remaining recipients are still
// tried. admin_otp goes to the submitter only.
func (d *Dispatcher) Dispatch(ctx context.Context, form notification.FormType, data map[string]string) Results {
	view := d.view(form, data)

	recipients := []recipient{{RoleSubmitter, data["email"]}}
	if form != notification.FormAdminOTP {
		recipients = append(recipients,
			recipient{RoleCompany, d.cfg.CompanyEmail},
			recipient{RoleAdmin, d.cfg.AdminEmail},
		)
	}

	results := make(Results, 0, len(recipients))
	for _, rc := range recipients {
		res := Result{Role: rc.role, Recipient: rc.to}
		res.Err = d.send(ctx, form, rc.role, rc.to, view)
		res.Sent = res.Err == nil

		if res.Err != nil {
			d.log.Error("Failed to send notification email",
				"recipient_role", rc.role,
				"form_type", form,
				"error", res.Err,
			)
		} else {
			d.log.Info("Notification email sent", "recipient_role", rc.role, "form_type", form)
		}
		results = append(results, res)
	}

	return results
}

func (d *Dispatcher) send(ctx context.Context, form notification.FormType, role Role, to string, view mailView) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("no %s recipient configured", role)
	}

	subject, body, err := d.templates.render(form, role, view)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", d.cfg.FromEmail, fromName(d.cfg.FromName, role))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return d.sender.DialAndSend(m)
}

func fromName(base string, role Role) string {
	switch role {
	case RoleCompany:
		return base + " System"
	case RoleAdmin:
		return base + " Admin Alert"
	default:
		return base
	}
}

func (d *Dispatcher) view(form notification.FormType, data map[string]string) mailView {
	v := mailView{
		Data:        data,
		SubmittedAt: d.now().Format(time.RFC1123),
	}
	if form == notification.FormNewsletter {
		v.UnsubscribeURL = d.unsubscribeURL(data["email"])
	}
	return v
}

func (d *Dispatcher) unsubscribeURL(email string) string {
	if d.sealer == nil || email == "" {
		return ""
	}
	token, err := d.sealer.Seal(email)
	if err != nil {
		d.log.Error("Failed to seal unsubscribe token", "error", err)
		return ""
	}
	return strings.TrimRight(d.cfg.PublicBaseURL, "/") + "/api/newsletter/unsubscribe/" + token
}
