package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"anoa.com/storerating/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	NameMinLength     = 20
	NameMaxLength     = 60
	AddressMaxLength  = 400
	PasswordMinLength = 8
	PasswordMaxLength = 16
	RatingMin         = 1
	RatingMax         = 5
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)

	registerOnce sync.Once
	registerErr  error
	validRoles   map[string]struct{}
)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPassword requires 8-16 characters with an ASCII uppercase letter and a special character.
func IsValidPassword(password string) bool {
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLength || n > PasswordMaxLength {
		return false
	}
	hasUpper := strings.IndexFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) >= 0
	return hasUpper && specialPattern.MatchString(password)
}

// IsValidName bounds the trimmed length of user and store names.
func IsValidName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= NameMinLength && n <= NameMaxLength
}

func IsValidAddress(address string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(address)) <= AddressMaxLength
}

// ValidateCleaned re-applies the name and address rules to values whose markup
// was stripped after binding. A nil field was not supplied and is skipped.
func ValidateCleaned(nameLabel string, name, address *string, addressRequired bool) error {
	var messages []string
	if name != nil && !IsValidName(*name) {
		messages = append(messages, nameMessage(nameLabel))
	}
	if address != nil {
		switch {
		case addressRequired && strings.TrimSpace(*address) == "":
			messages = append(messages, "Address is required")
		case !IsValidAddress(*address):
			messages = append(messages, addressMessage())
		}
	}
	if len(messages) > 0 {
		return apperror.Validation(messages...)
	}
	return nil
}

func nameMessage(label string) string {
	return fmt.Sprintf("%s must be between %d and %d characters", label, NameMinLength, NameMaxLength)
}

func addressMessage() string {
	return fmt.Sprintf("Address must not exceed %d characters", AddressMaxLength)
}

func IsValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}

func IsValidRole(role string) bool {
	_, ok := validRoles[role]
	return ok
}

// Register installs the custom rules on gin's validator engine. roles is the
// closed set accepted by the "role" tag. Safe to call more than once.
func Register(roles ...string) error {
	registerOnce.Do(func() {
		validRoles = make(map[string]struct{}, len(roles))
		for _, r := range roles {
			validRoles[r] = struct{}{}
		}

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected validator engine")
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
			return f.Name
		})

		rules := map[string]validator.Func{
			"appemail": func(fl validator.FieldLevel) bool { return IsValidEmail(fl.Field().String()) },
			"password": func(fl validator.FieldLevel) bool { return IsValidPassword(fl.Field().String()) },
			"personname": func(fl validator.FieldLevel) bool {
				return IsValidName(fl.Field().String())
			},
			"address": func(fl validator.FieldLevel) bool { return IsValidAddress(fl.Field().String()) },
			"rating":  func(fl validator.FieldLevel) bool { return IsValidRating(int(fl.Field().Int())) },
			"role":    func(fl validator.FieldLevel) bool { return IsValidRole(fl.Field().String()) },
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = fmt.Errorf("register %s: %w", tag, err)
				return
			}
		}
	})
	return registerErr
}

// FormatValidationErrors renders one message per violated field.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, getFieldErrorMessage(fieldError))
	}
	return messages
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "appemail", "email":
		return "Please provide a valid email address"
	case "password":
		return fmt.Sprintf("%s must be 8-16 characters with at least one uppercase letter and one special character", field)
	case "personname":
		return nameMessage(field)
	case "address":
		return addressMessage()
	case "rating":
		return fmt.Sprintf("%s must be between %d and %d", field, RatingMin, RatingMax)
	case "role":
		return "Invalid role specified"
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// BindJSON decodes and validates the request body into obj.
func BindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return apperror.Validation(FormatValidationErrors(err)...)
		}
		return apperror.BadRequest("Invalid request body")
	}
	return nil
}

// BindQuery decodes and validates the query string into obj.
func BindQuery(c *gin.Context, obj any) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return apperror.Validation(FormatValidationErrors(err)...)
		}
		return apperror.BadRequest("Invalid query parameters")
	}
	return nil
}
