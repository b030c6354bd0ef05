package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"storefront-orders/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// ключи ошибок по json-именам полей
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("person_name", stringRule(ValidateName))
	validate.RegisterValidation("email_address", stringRule(ValidateEmail))
	validate.RegisterValidation("phone", stringRule(ValidatePhone))
	validate.RegisterValidation("street", stringRule(ValidateAddress))
	validate.RegisterValidation("city", stringRule(ValidateCity))
	validate.RegisterValidation("state", stringRule(ValidateState))
	validate.RegisterValidation("zip", validateZipField)
	validate.RegisterValidation("notes", stringRule(func(s string) models.ValidationResult {
		return ValidateMessage(s, FieldOptions{Label: "Notes"})
	}))
}

func stringRule(rule func(string) models.ValidationResult) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return rule(fl.Field().String()).IsValid
	}
}

func validateZipField(fl validator.FieldLevel) bool {
	country := ""
	if parent := fl.Parent(); parent.Kind() == reflect.Struct {
		if f := parent.FieldByName("Country"); f.IsValid() && f.Kind() == reflect.String {
			country = f.String()
		}
	}
	return ValidateZip(fl.Field().String(), country).IsValid
}

// ValidateOrder runs every per-field rule over the checkout form.
// Product payload integrity is checked separately by ValidateProducts.
func ValidateOrder(order *models.OrderInput) models.FormResult {
	if order == nil {
		return models.FormResult{Errors: map[string]string{"order": "Order data is missing"}}
	}

	result := models.FormResult{IsValid: true, Errors: map[string]string{}}
	if err := validate.Struct(order); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			result.Errors["order"] = err.Error()
		} else {
			for _, e := range validationErrors {
				field := fieldKey(e.Namespace())
				if _, seen := result.Errors[field]; !seen {
					result.Errors[field] = formatFieldError(order, e)
				}
			}
		}
	}
	validateQuantities(order.Items, result.Errors)
	result.IsValid = len(result.Errors) == 0
	return result
}

// количество без значения - ошибка целостности, её ловит ValidateProducts
func validateQuantities(items []models.LineItem, errs map[string]string) {
	for i, item := range items {
		if item.Quantity == nil {
			continue
		}
		if r := ValidateQuantity(item.Quantity); !r.IsValid {
			key := fmt.Sprintf("items[%d].quantity", i)
			if _, seen := errs[key]; !seen {
				errs[key] = r.Error
			}
		}
	}
}

// свои текста ошибок
func formatFieldError(order *models.OrderInput, e validator.FieldError) string {
	value := fmt.Sprint(e.Value())

	switch e.Tag() {
	case "person_name":
		return ValidateName(value).Error
	case "email_address":
		return ValidateEmail(value).Error
	case "phone":
		return ValidatePhone(value).Error
	case "street":
		return ValidateAddress(value).Error
	case "city":
		return ValidateCity(value).Error
	case "state":
		return ValidateState(value).Error
	case "zip":
		return ValidateZip(value, order.Shipping.Country).Error
	case "notes":
		return ValidateMessage(value, FieldOptions{Label: "Notes"}).Error
	case "gte":
		return fmt.Sprintf("%s cannot be negative", e.Field())
	case "required", "min":
		if e.Field() == "items" {
			return "At least one product is required"
		}
		if e.Field() == "payment_method" {
			return "Please select a payment method"
		}
		return fmt.Sprintf("%s is required", e.Field())
	default:
		return fmt.Sprintf("%s: rule '%s' failed", e.Field(), e.Tag())
	}
}

// "OrderInput.customer.email" -> "customer.email"
func fieldKey(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// ValidateField validates a single form field by its json path for live feedback.
func ValidateField(name string, value any, opts FieldOptions) models.ValidationResult {
	s, _ := value.(string)

	switch name {
	case "name", "customer.name":
		return ValidateName(s)
	case "email", "customer.email":
		return ValidateEmail(s)
	case "phone", "customer.phone":
		return ValidatePhone(s)
	case "street", "address", "shipping.street":
		return ValidateAddress(s)
	case "city", "shipping.city":
		return ValidateCity(s)
	case "state", "shipping.state":
		return ValidateState(s)
	case "zip", "shipping.zip":
		return ValidateZip(s, opts.Country)
	case "quantity":
		return ValidateQuantity(value)
	case "notes", "message":
		return ValidateMessage(s, opts)
	case "payment_method":
		if strings.TrimSpace(s) == "" {
			return invalid("Please select a payment method")
		}
		return valid()
	default:
		return invalid("Unknown field %q", name)
	}
}
