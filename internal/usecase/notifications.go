package usecase

import (
	"fmt"

	"github.com/mpalashb/secureprime-digital-agency/internal/domain"
	"github.com/mpalashb/secureprime-digital-agency/pkg/email"
)

// contactMessages builds the thank-you email and, when staffTo is set, the internal alert
func contactMessages(brand, staffTo string, c *domain.Contact) ([]email.Message, error) {
	body, err := email.RenderThankYou(email.ThankYouData{
		Brand:         brand,
		Heading:       "Thank You for Contacting " + brand,
		RecipientName: c.Name,
		Intro:         "We have received your message and appreciate you reaching out to us. Our team will review your inquiry and get back to you as soon as possible.",
		Quote:         c.Message,
		Closing:       "If you have any further questions, please don't hesitate to contact us again.",
	})
	if err != nil {
		return nil, err
	}

	msgs := []email.Message{{
		To:      []string{c.Email},
		Subject: "Thank you for contacting " + brand,
		HTML:    body,
	}}

	if staffTo == "" {
		return msgs, nil
	}
	alert, err := alertMessage(brand, staffTo, "contact form", c.Name, c.Email, []email.Detail{
		{Label: "Message", Value: c.Message},
	})
	if err != nil {
		return nil, err
	}
	return append(msgs, alert), nil
}

// consultationMessages covers consultation bookings and project inquiries; the wording follows FormType
func consultationMessages(brand, staffTo string, c *domain.Consultation) ([]email.Message, error) {
	data := email.ThankYouData{
		Brand:         brand,
		RecipientName: c.FullName,
	}
	var subject, form string

	if c.IsConsultation() {
		form = "consultation"
		subject = "Thank you for requesting a consultation with " + brand
		data.Heading = "Thank You for Requesting a Consultation"
		data.Intro = fmt.Sprintf("We have received your consultation request and appreciate your interest in %s. Our team will review your request and get back to you shortly to confirm your appointment.", brand)
		data.DetailsHeading = "Consultation Details:"
		data.Closing = "If you need to make any changes to your request, please don't hesitate to contact us."
	} else {
		form = "project inquiry"
		subject = "Thank you for your project inquiry with " + brand
		data.Heading = "Thank You for Your Project Inquiry"
		data.Intro = fmt.Sprintf("We have received your project inquiry and appreciate your interest in %s. Our team will review your project details and get back to you within 24 hours to discuss how we can help bring your vision to life.", brand)
		data.DetailsHeading = "Project Inquiry Details:"
		data.Closing = "We're excited about the possibility of working together and will be in touch soon to discuss the next steps."
	}
	data.Details = consultationDetails(c)

	body, err := email.RenderThankYou(data)
	if err != nil {
		return nil, err
	}

	msgs := []email.Message{{
		To:      []string{c.Email},
		Subject: subject,
		HTML:    body,
	}}

	if staffTo == "" {
		return msgs, nil
	}
	details := append([]email.Detail{{Label: "Phone", Value: c.Phone}}, data.Details...)
	alert, err := alertMessage(brand, staffTo, form, c.FullName, c.Email, details)
	if err != nil {
		return nil, err
	}
	return append(msgs, alert), nil
}

// consultationDetails lists the service and every optional field the submitter filled in
func consultationDetails(c *domain.Consultation) []email.Detail {
	details := []email.Detail{{Label: "Service", Value: c.Service}}
	if c.IsConsultation() {
		details = append(details, email.Detail{Label: "Consultation Type", Value: c.ConsultationType})
	}
	details = email.AppendDetail(details, "Preferred Date", c.PreferredDate)
	details = email.AppendDetail(details, "Preferred Time", c.PreferredTime)
	details = email.AppendDetail(details, "Company", c.Company)
	details = email.AppendDetail(details, "Project Description", c.ProjectDescription)
	details = email.AppendDetail(details, "Project Budget", c.ProjectBudget)
	details = email.AppendDetail(details, "Project Timeline", c.ProjectTimeline)
	details = email.AppendDetail(details, "Preferred Contact Method", c.ContactMethod)
	details = email.AppendDetail(details, "Additional Information", c.AdditionalInformation)
	return details
}

func alertMessage(brand, staffTo, form, name, addr string, details []email.Detail) (email.Message, error) {
	body, err := email.RenderAlert(email.AlertData{
		Brand:       brand,
		Form:        form,
		SenderName:  name,
		SenderEmail: addr,
		Details:     details,
	})
	if err != nil {
		return email.Message{}, err
	}
	return email.Message{
		To:      []string{staffTo},
		ReplyTo: addr,
		Subject: fmt.Sprintf("New %s submission from %s", form, name),
		HTML:    body,
	}, nil
}
