package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"estatehub/pkg/notification"
)

type mailView struct {
	Data           map[string]string
	SubmittedAt    string
	UnsubscribeURL string
}

type mailTemplate struct {
	subject *texttemplate.Template
	body    *htmltemplate.Template
}

type templateSet struct {
	submitter map[notification.FormType]mailTemplate
	internal  map[notification.FormType]mailTemplate
}

const (
	layoutOpen  = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`
	layoutClose = `</div>`
)

var submitterSources = map[notification.FormType][2]string{
	notification.FormContact: {
		"Thank you for contacting us",
		`<h2>Dear {{.Data.name}},</h2>
<p>We have received your inquiry and our team will get back to you within 24-48 hours.</p>
<p><strong>Message:</strong> {{with .Data.message}}{{.}}{{else}}General inquiry{{end}}</p>
<p><strong>Submitted on:</strong> {{.SubmittedAt}}</p>`,
	},
	notification.FormBuilder: {
		"Thank you for your interest in {{.Data.builder_name}}",
		`<h2>Dear {{.Data.name}},</h2>
<p>Thank you for your interest in projects by {{.Data.builder_name}}. Our team will share the details with you shortly.</p>`,
	},
	notification.FormLocation: {
		"Your enquiry about {{.Data.location}}",
		`<h2>Dear {{.Data.name}},</h2>
<p>Thank you for your interest in properties in {{.Data.location}}. Our team will contact you soon.</p>
<p><strong>Property type:</strong> {{.Data.property_type}}<br><strong>Budget:</strong> {{.Data.budget}}</p>`,
	},
	notification.FormProjectCallback: {
		"Callback request for {{.Data.project_name}}",
		`<h2>Dear {{.Data.name}},</h2>
<p>We have received your callback request for {{.Data.project_name}}. Our team will call you shortly.</p>`,
	},
	notification.FormSearchBox: {
		"We received your property enquiry",
		`<h2>Dear {{.Data.name}},</h2>
<p>Thank you for your enquiry{{with .Data.project_name}} about {{.}}{{end}}{{with .Data.location}} in {{.}}{{end}}. Our team will get in touch soon.</p>`,
	},
	notification.FormNewsletter: {
		"Welcome to our newsletter",
		`<h2>Welcome!</h2>
<p>You are now subscribed to our newsletter with {{.Data.email}}.</p>
{{with .UnsubscribeURL}}<p style="font-size: 12px;">Changed your mind? <a href="{{.}}">Unsubscribe</a>.</p>{{end}}`,
	},
	notification.FormCareer: {
		"Application received",
		`<h2>Dear {{.Data.name}},</h2>
<p>Thank you for applying for the position of {{.Data.position}}. We will review your application and get back to you.</p>`,
	},
	notification.FormAdminOTP: {
		"Your password reset code",
		`<h2>Hello {{.Data.name}},</h2>
<p>Your password reset code is <strong>{{.Data.otp}}</strong>. It expires in {{.Data.expires_in}}.</p>
<p>If you did not request a reset, you can ignore this email.</p>`,
	},
}

var internalSubjects = map[notification.FormType]string{
	notification.FormContact:         "New Contact Form Submission from {{.Data.name}}",
	notification.FormBuilder:         "Builder Inquiry: {{.Data.builder_name}} - {{.Data.name}}",
	notification.FormLocation:        "Location Inquiry: {{.Data.location}} - {{.Data.name}}",
	notification.FormProjectCallback: "Callback Request: {{.Data.project_name}} - {{.Data.name}}",
	notification.FormSearchBox:       "Search Enquiry from {{.Data.name}}",
	notification.FormNewsletter:      "New Newsletter Subscription: {{.Data.email}}",
	notification.FormCareer:          "New Job Application: {{.Data.position}} - {{.Data.name}}",
}

const internalBody = `<h2>{{.Title}}</h2>
<table style="width: 100%; border-collapse: collapse;">
{{range $k, $v := .Data}}{{if $v}}<tr><td><strong>{{$k}}</strong></td><td>{{$v}}</td></tr>
{{end}}{{end}}</table>
<p style="color: #6b7280;">Submitted on {{.SubmittedAt}}</p>`

func parseTemplates() (*templateSet, error) {
	set := &templateSet{
		submitter: make(map[notification.FormType]mailTemplate),
		internal:  make(map[notification.FormType]mailTemplate),
	}

	for form, src := range submitterSources {
		t, err := newMailTemplate(string(form), src[0], src[1])
		if err != nil {
			return nil, err
		}
		set.submitter[form] = t
	}

	for form, subject := range internalSubjects {
		t, err := newMailTemplate("internal_"+string(form), subject, internalBody)
		if err != nil {
			return nil, err
		}
		set.internal[form] = t
	}

	return set, nil
}

func newMailTemplate(name, subject, body string) (mailTemplate, error) {
	s, err := texttemplate.New(name + "_subject").Option("missingkey=zero").Parse(subject)
	if err != nil {
		return mailTemplate{}, err
	}
	b, err := htmltemplate.New(name + "_body").Option("missingkey=zero").Parse(layoutOpen + body + layoutClose)
	if err != nil {
		return mailTemplate{}, err
	}
	return mailTemplate{subject: s, body: b}, nil
}

type internalView struct {
	mailView
	Title string
}

func (ts *templateSet) render(form notification.FormType, role Role, view mailView) (string, string, error) {
	var (
		t    mailTemplate
		ok   bool
		data any = view
	)

	if role == RoleSubmitter {
		t, ok = ts.submitter[form]
	} else {
		t, ok = ts.internal[form]
		data = internalView{mailView: view, Title: "New " + strings.ReplaceAll(string(form), "_", " ") + " submission"}
	}
	if !ok {
		return "", "", fmt.Errorf("no %s template for form type %q", role, form)
	}

	var subject, body bytes.Buffer
	if err := t.subject.Execute(&subject, data); err != nil {
		return "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := t.body.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("render body: %w", err)
	}

	s := strings.TrimSpace(subject.String())
	if role == RoleAdmin {
		s = "[ADMIN] " + s
	}
	return s, body.String(), nil
}
