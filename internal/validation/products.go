package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"storefront-orders/models"
)

// IntegrityError reports a malformed product payload. It is a client bug,
// not a user mistake, and blocks the whole submission.
type IntegrityError struct {
	Problems []string
}

func (e *IntegrityError) Error() string {
	return "order payload integrity check failed: " + strings.Join(e.Problems, "; ")
}

// ValidateProducts cleans every line item and checks the payload that is about
// to be sent. The cleaned items are returned even on failure so they can be backed up.
func ValidateProducts(items []models.LineItem) ([]models.CleanedItem, error) {
	cleaned := make([]models.CleanedItem, 0, len(items))
	var problems []string

	if len(items) == 0 {
		problems = append(problems, "order has no items")
	}

	for i, item := range items {
		name := SanitizeInput(item.ProductName)
		if name == "" {
			problems = append(problems, fmt.Sprintf("item[%d]: product name is empty", i))
		}
		quantity := 0
		if item.Quantity == nil {
			problems = append(problems, fmt.Sprintf("item[%d]: quantity is missing", i))
		} else if q, ok := WholeQuantity(item.Quantity); ok {
			quantity = q
		} else {
			problems = append(problems, fmt.Sprintf("item[%d]: quantity is not a whole number", i))
		}
		price := 0.0
		if item.Price == nil {
			problems = append(problems, fmt.Sprintf("item[%d]: price is undefined", i))
		} else {
			price = *item.Price
		}

		custom, preview, keyProblems := CleanCustomization(item.Customization)
		for _, p := range keyProblems {
			problems = append(problems, fmt.Sprintf("item[%d]: %s", i, p))
		}

		cleaned = append(cleaned, models.CleanedItem{
			ProductName:   name,
			Quantity:      quantity,
			Price:         price,
			Customization: custom,
			UploadPreview: preview,
		})
	}

	if len(problems) > 0 {
		return cleaned, &IntegrityError{Problems: problems}
	}
	return cleaned, nil
}

// CleanCustomization drops empty values, pulls the upload preview out of the
// reserved key and reports keys that must never reach the order log.
func CleanCustomization(custom models.CustomizationMap) (map[string]string, string, []string) {
	out := make(map[string]string, len(custom))
	var problems []string
	preview := uploadPreview(custom[models.UploadsKey])

	keys := make([]string, 0, len(custom))
	for k := range custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == models.UploadsKey {
			continue
		}
		switch trimmed := strings.TrimSpace(key); {
		case trimmed == "":
			problems = append(problems, "customization key is empty")
			continue
		case strings.EqualFold(trimmed, "undefined"), strings.EqualFold(trimmed, "null"):
			problems = append(problems, fmt.Sprintf("customization key %q is unresolved", key))
			continue
		case strings.HasPrefix(trimmed, models.ReservedPrefix):
			problems = append(problems, fmt.Sprintf("customization key %q uses a reserved prefix", key))
			continue
		}

		value := custom[key]
		if value == nil {
			continue
		}
		s := SanitizeInput(fmt.Sprint(value))
		if s == "" {
			continue
		}
		out[key] = s
	}
	return out, preview, problems
}

func uploadPreview(meta any) string {
	switch v := meta.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if p, ok := v["preview"].(string); ok {
			return strings.TrimSpace(p)
		}
	case map[string]string:
		return strings.TrimSpace(v["preview"])
	}
	return ""
}

// ToSnakeCase turns "Engraving Text" and "fontSize" into "engraving_text" and "font_size".
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(strings.TrimSpace(s))
	pendingSep := false
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				pendingSep = true
			}
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingSep = true
		}
	}
	return b.String()
}
