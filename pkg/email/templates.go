package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Detail is one labelled line in the details list of an email
type Detail struct {
	Label string
	Value string
}

// ThankYouData holds the data for the acknowledgement sent to the submitter
type ThankYouData struct {
	Brand          string
	Heading        string
	RecipientName  string
	Intro          string
	Quote          string // copy of the submitted message, contact form only
	DetailsHeading string
	Details        []Detail
	Closing        string
}

// AlertData holds the data for the internal copy sent to the agency inbox
type AlertData struct {
	Brand       string
	Form        string
	SenderName  string
	SenderEmail string
	Details     []Detail
}

// thankYouTemplate is the HTML template for submitter acknowledgements
const thankYouTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 5px;">
  <h2 style="color: #333;">{{.Heading}}</h2>
  <p style="color: #555; line-height: 1.6;">Hello {{.RecipientName}},</p>
  <p style="color: #555; line-height: 1.6;">{{.Intro}}</p>
{{- if .Quote}}
  <p style="color: #555; line-height: 1.6;">Here's a copy of your message:</p>
  <div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <p style="color: #333; margin: 0;">{{.Quote}}</p>
  </div>
{{- end}}
{{- if .Details}}
  <h3 style="color: #333; margin-top: 25px;">{{.DetailsHeading}}</h3>
  <ul style="color: #555; line-height: 1.6;">
  {{- range .Details}}
    <li><strong>{{.Label}}:</strong> {{.Value}}</li>
  {{- end}}
  </ul>
{{- end}}
  <p style="color: #555; line-height: 1.6;">{{.Closing}}</p>
  <p style="color: #555; line-height: 1.6;">Best regards,<br>The {{.Brand}} Team</p>
</div>`

// alertTemplate is the HTML template for the internal submission alert
const alertTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New {{.Form}} submission</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1 style="background: #0066cc; color: white; padding: 20px; text-align: center;">New {{.Form}} submission</h1>
        <p><strong>From:</strong> {{.SenderName}} ({{.SenderEmail}})</p>
        <ul>
        {{- range .Details}}
            <li><strong>{{.Label}}:</strong> {{.Value}}</li>
        {{- end}}
        </ul>
        <p style="color: #888; font-size: 12px;">Sent from the {{.Brand}} website. Reply to this email to answer {{.SenderEmail}}.</p>
    </div>
</body>
</html>`

var (
	thankYouTmpl = template.Must(template.New("thank_you").Parse(thankYouTemplate))
	alertTmpl    = template.Must(template.New("alert").Parse(alertTemplate))
)

// RenderThankYou renders the submitter acknowledgement body
func RenderThankYou(data ThankYouData) (string, error) {
	var body bytes.Buffer
	if err := thankYouTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// RenderAlert renders the internal alert body
func RenderAlert(data AlertData) (string, error) {
	var body bytes.Buffer
	if err := alertTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// AppendDetail adds a line only when value is non-empty
func AppendDetail(details []Detail, label string, value *string) []Detail {
	if value == nil || *value == "" {
		return details
	}
	return append(details, Detail{Label: label, Value: *value})
}
