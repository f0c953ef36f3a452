package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/common"
	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/v1/contact"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9+\-\s()]+$`)
)

// contactFields lists the accepted keys of a submission, in reporting order
var contactFields = []string{"name", "phone", "email", "service", "message", "website"}

// fieldLabels are the human names used in messages
var fieldLabels = map[string]string{
	"name":    "Name",
	"phone":   "Phone number",
	"email":   "Email",
	"service": "Service",
	"message": "Message",
	"website": "Website",
}

// Validator checks contact submissions
type Validator struct {
	validate *validator.Validate
}

// New creates a validator reading `binding` tags, the same tags gin uses
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	RegisterValidators(v)
	return &Validator{validate: v}
}

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("email", validateEmail)
	v.RegisterValidation("phone", validatePhone)
}

// validateEmail checks if the email is valid
func validateEmail(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

// validatePhone allows digits, plus, dash, space and parentheses
func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// ValidateContact turns an untyped JSON object into a ContactRequest. Every field is
// checked before returning; on failure the request is nil and errs holds one or more
// messages per failing field.
func (v *Validator) ValidateContact(raw map[string]interface{}) (*contact.ContactRequest, common.FieldErrors) {
	errs := common.FieldErrors{}
	values := make(map[string]string, len(contactFields))
	wrongType := make(map[string]bool)

	for _, field := range contactFields {
		val, present := raw[field]
		if !present || val == nil {
			continue
		}
		s, ok := val.(string)
		if !ok {
			errs[field] = append(errs[field], fmt.Sprintf("%s must be a string", fieldLabels[field]))
			wrongType[field] = true
			continue
		}
		values[field] = s
	}

	req := &contact.ContactRequest{
		Name:    values["name"],
		Phone:   values["phone"],
		Email:   values["email"],
		Service: values["service"],
		Message: values["message"],
		Website: values["website"],
	}

	var validationErrors validator.ValidationErrors
	if err := v.validate.Struct(req); errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			field := e.Field()
			if wrongType[field] {
				continue
			}
			errs[field] = append(errs[field], message(field, e.Tag(), e.Param()))
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return req, nil
}

// message renders the user-facing text for one failed rule
func message(field, tag, param string) string {
	label := fieldLabels[field]
	unit := "characters"
	if field == "phone" {
		unit = "digits"
	}

	switch tag {
	case "required":
		if field == "phone" {
			return "Phone number is required"
		}
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s %s", label, param, unit)
	case "max":
		return label + " is too long"
	case "email":
		return "Invalid email address"
	case "phone":
		return "Invalid phone number format"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
