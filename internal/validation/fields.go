package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"storefront-orders/models"
)

const (
	maxEmailLength   = 254
	minNameLength    = 2
	maxNameLength    = 100
	minAddressLength = 5
	maxAddressLength = 200
	minQuantity      = 1
	maxQuantity      = 100
	maxMessageLength = 500
	maxFileSize      = 5 * 1024 * 1024
	minPhoneDigits   = 10
	maxPhoneDigits   = 15
)

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneCharsetRe   = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
	namePattern      = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	indiaZipPattern  = regexp.MustCompile(`^[0-9]{6}$`)
	genericZipRe     = regexp.MustCompile(`^[A-Za-z0-9\s-]{5,10}$`)
	scriptBlockRe    = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)\s*>`)
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	allowedFileTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
)

// опечатки в популярных доменах
var domainTypos = map[string]string{
	"gmial.com":   "gmail.com",
	"gmai.com":    "gmail.com",
	"gmal.com":    "gmail.com",
	"gmail.co":    "gmail.com",
	"gamil.com":   "gmail.com",
	"yahooo.com":  "yahoo.com",
	"yaho.com":    "yahoo.com",
	"hotmial.com": "hotmail.com",
	"hotmal.com":  "hotmail.com",
	"outlok.com":  "outlook.com",
	"outloo.com":  "outlook.com",
}

// FieldOptions configures the optional behaviour of a field validator.
type FieldOptions struct {
	Required bool
	Label    string
	Country  string
}

// FileInfo describes an uploaded file.
type FileInfo struct {
	Name     string
	Size     int64
	MIMEType string
}

func valid() models.ValidationResult {
	return models.ValidationResult{IsValid: true}
}

func invalid(format string, args ...any) models.ValidationResult {
	return models.ValidationResult{IsValid: false, Error: fmt.Sprintf(format, args...)}
}

func ValidateEmail(email string) models.ValidationResult {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("Email is required")
	}
	if len(email) > maxEmailLength {
		return invalid("Email cannot exceed %d characters", maxEmailLength)
	}
	if !emailPattern.MatchString(email) {
		return invalid("Please enter a valid email address")
	}

	at := strings.LastIndex(email, "@")
	domain := strings.ToLower(email[at+1:])
	if fix, ok := domainTypos[domain]; ok {
		return invalid("Did you mean %s@%s?", email[:at], fix)
	}
	return valid()
}

func ValidatePhone(phone string) models.ValidationResult {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return invalid("Phone number is required")
	}
	if !phoneCharsetRe.MatchString(phone) {
		return invalid("Phone number can only contain digits, spaces, hyphens, parentheses and a leading +")
	}

	digits := onlyDigits(phone)
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return invalid("Phone number must have between %d and %d digits", minPhoneDigits, maxPhoneDigits)
	}

	if strings.HasPrefix(phone, "+91") || (len(digits) == 12 && strings.HasPrefix(digits, "91")) {
		local := digits[2:]
		if len(local) != 10 {
			return invalid("Indian phone numbers must have 10 digits after +91")
		}
		if !strings.ContainsRune("6789", rune(local[0])) {
			return invalid("Indian mobile numbers must start with 6, 7, 8 or 9")
		}
	}
	return valid()
}

func ValidateName(name string) models.ValidationResult {
	return validatePersonLike(name, "Name")
}

func ValidateCity(city string) models.ValidationResult {
	return validatePersonLike(city, "City")
}

func ValidateState(state string) models.ValidationResult {
	return validatePersonLike(state, "State")
}

func validatePersonLike(value, label string) models.ValidationResult {
	value = strings.TrimSpace(value)
	if value == "" {
		return invalid("%s is required", label)
	}
	n := utf8.RuneCountInString(value)
	if n < minNameLength {
		return invalid("%s must be at least %d characters", label, minNameLength)
	}
	if n > maxNameLength {
		return invalid("%s cannot exceed %d characters", label, maxNameLength)
	}
	if !namePattern.MatchString(value) {
		return invalid("%s can only contain letters, spaces, hyphens and apostrophes", label)
	}
	if strings.Contains(value, "  ") {
		return invalid("%s cannot contain consecutive spaces", label)
	}
	return valid()
}

func ValidateAddress(address string) models.ValidationResult {
	address = strings.TrimSpace(address)
	if address == "" {
		return invalid("Address is required")
	}
	n := utf8.RuneCountInString(address)
	if n < minAddressLength {
		return invalid("Address must be at least %d characters", minAddressLength)
	}
	if n > maxAddressLength {
		return invalid("Address cannot exceed %d characters", maxAddressLength)
	}
	return valid()
}

func ValidateZip(zip, country string) models.ValidationResult {
	zip = strings.TrimSpace(zip)
	if zip == "" {
		return invalid("ZIP code is required")
	}
	if strings.EqualFold(strings.TrimSpace(country), "India") {
		if !indiaZipPattern.MatchString(zip) {
			return invalid("PIN code must be exactly 6 digits")
		}
		return valid()
	}
	if !genericZipRe.MatchString(zip) {
		return invalid("ZIP code must be 5-10 letters, digits, spaces or hyphens")
	}
	return valid()
}

// ValidateQuantity accepts ints, floats and numeric strings.
func ValidateQuantity(value any) models.ValidationResult {
	q, ok := toNumber(value)
	if !ok {
		return invalid("Quantity must be a number")
	}
	if q != math.Trunc(q) {
		return invalid("Quantity must be a whole number")
	}
	if q < minQuantity {
		return invalid("Quantity must be at least %d", minQuantity)
	}
	if q > maxQuantity {
		return invalid("Quantity cannot exceed %d", maxQuantity)
	}
	return valid()
}

func ValidateMessage(message string, opts FieldOptions) models.ValidationResult {
	label := opts.Label
	if label == "" {
		label = "Message"
	}
	message = strings.TrimSpace(message)
	if message == "" {
		if opts.Required {
			return invalid("%s is required", label)
		}
		return valid()
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return invalid("%s cannot exceed %d characters", label, maxMessageLength)
	}
	return valid()
}

func ValidateFile(file *FileInfo, opts FieldOptions) models.ValidationResult {
	if file == nil {
		if opts.Required {
			return invalid("Please upload a file")
		}
		return valid()
	}
	if file.Size > maxFileSize {
		return invalid("File size cannot exceed 5MB")
	}
	if !allowedFileTypes[strings.ToLower(file.MIMEType)] {
		return invalid("Only JPEG, PNG, GIF and WebP images are allowed")
	}
	return valid()
}

// SanitizeInput strips tag-like substrings and surrounding whitespace.
func SanitizeInput(s string) string {
	for {
		out := scriptBlockRe.ReplaceAllString(s, "")
		out = tagPattern.ReplaceAllString(out, "")
		out = strings.TrimSpace(out)
		if out == s {
			return out
		}
		s = out
	}
}

// Sanitize cleans strings and returns any other value unchanged.
func Sanitize(value any) any {
	switch v := value.(type) {
	case string:
		return SanitizeInput(v)
	case *string:
		if v == nil {
			return v
		}
		s := SanitizeInput(*v)
		return &s
	default:
		return value
	}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// WholeQuantity converts a decoded quantity to an int. It does not check the range.
func WholeQuantity(value any) (int, bool) {
	q, ok := toNumber(value)
	if !ok || q != math.Trunc(q) || q > math.MaxInt32 || q < math.MinInt32 {
		return 0, false
	}
	return int(q), true
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), !math.IsNaN(float64(v))
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
