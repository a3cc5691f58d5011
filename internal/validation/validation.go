package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"crm/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	PhoneMessage         = "Invalid phone format. Use +1234567890 or 123-456-7890."
	PriceMessage         = "Price must be positive."
	StockMessage         = "Stock cannot be negative."
	EmptyProductsMessage = "At least one product must be selected."
)

var phonePattern = regexp.MustCompile(`^(\+\d{7,15}|\d{3}-\d{3}-\d{4})$`)

// ValidatePhone accepts an empty phone or one in +1234567890 / 123-456-7890 form.
func ValidatePhone(phone string) error {
	if phone == "" || phonePattern.MatchString(phone) {
		return nil
	}
	return apperrors.Validation(PhoneMessage)
}

// ValidatePriceAndStock requires price > 0 and stock >= 0.
func ValidatePriceAndStock(price decimal.Decimal, stock int) error {
	if !price.IsPositive() {
		return apperrors.Validation(PriceMessage)
	}
	if stock < 0 {
		return apperrors.Validation(StockMessage)
	}
	return nil
}

// Validator wraps validator.Validate with the CRM's custom tags and
// turns field errors into readable messages.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the "phone" tag registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String()) == nil
	})
	return &Validator{validate: v}
}

// Struct validates s and returns a *apperrors.ValidationError on failure.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate %T: %w", s, err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fieldMessage(e))
	}
	return apperrors.Validation(strings.Join(messages, " "))
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required.", e.Field())
	case "email":
		return "Invalid email format."
	case "phone":
		return PhoneMessage
	case "max":
		return fmt.Sprintf("Field '%s' must be at most %s characters.", e.Field(), e.Param())
	case "datetime":
		return fmt.Sprintf("Field '%s' must be an RFC 3339 timestamp.", e.Field())
	case "numeric":
		return fmt.Sprintf("Field '%s' must be a number.", e.Field())
	case "oneof":
		return fmt.Sprintf("Field '%s' must be one of: %s.", e.Field(), e.Param())
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag.", e.Field(), e.Tag())
	}
}
