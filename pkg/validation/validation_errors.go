package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-friendly labels
var FieldLabels = map[string]string{
	"name":                   "Name",
	"full_name":              "Full name",
	"email":                  "Email",
	"message":                "Message",
	"company":                "Company name",
	"phone":                  "Phone number",
	"service":                "Service",
	"consultation_type":      "Consultation type",
	"preferred_date":         "Preferred date",
	"preferred_time":         "Preferred time",
	"project_description":    "Project description",
	"project_budget":         "Project budget",
	"project_timeline":       "Project timeline",
	"contact_method":         "Contact method",
	"additional_information": "Additional information",
	"form_type":              "Form type",
	"terms_accepted":         "Terms",
}

// Result is a failed validation: one combined message plus the first violated rule per field
type Result struct {
	Message string
	Fields  map[string]string
}

// Summarize converts validator.ValidationErrors into a Result.
// Missing required fields win over every other rule so the caller sees them in one message.
func Summarize(err error) Result {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return Result{Message: err.Error(), Fields: map[string]string{}}
	}

	fields := make(map[string]string, len(validationErrors))
	var missing, other []string
	badEmail := false

	for _, e := range validationErrors {
		name := e.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = formatSingleError(e)

		switch {
		case strings.HasPrefix(e.Tag(), "required"):
			missing = append(missing, name)
		case e.Tag() == "coarse_email":
			badEmail = true
		default:
			other = append(other, fields[name])
		}
	}

	var message string
	switch {
	case len(missing) > 0:
		message = "Missing required fields: " + strings.Join(missing, ", ")
	case badEmail:
		message = "Invalid email format"
	default:
		message = strings.Join(other, "; ")
	}

	return Result{Message: message, Fields: fields}
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required", "required_if", "required_unless":
		return fmt.Sprintf("%s is required", label)

	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, param)

	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, param)

	case "coarse_email", "email":
		return "Invalid email address"

	case "accepted":
		return "You must accept the terms and conditions"

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatSnakeCase(fieldName)
}

// formatSnakeCase turns project_budget into "Project budget"
func formatSnakeCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
