package submission

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"storefront-orders/internal/validation"
	"storefront-orders/models"
)

// sanitizeInput returns a copy of the form with every free-text field cleaned.
func sanitizeInput(in *models.OrderInput) models.OrderInput {
	out := *in
	out.Customer = models.Customer{
		Name:  validation.SanitizeInput(in.Customer.Name),
		Email: strings.TrimSpace(in.Customer.Email),
		Phone: strings.TrimSpace(in.Customer.Phone),
	}
	out.Shipping = models.ShippingAddress{
		Street:  validation.SanitizeInput(in.Shipping.Street),
		City:    validation.SanitizeInput(in.Shipping.City),
		State:   validation.SanitizeInput(in.Shipping.State),
		Zip:     strings.TrimSpace(in.Shipping.Zip),
		Country: validation.SanitizeInput(in.Shipping.Country),
	}
	out.PaymentMethod = validation.SanitizeInput(in.PaymentMethod)
	out.Notes = validation.SanitizeInput(in.Notes)
	out.Items = append([]models.LineItem(nil), in.Items...)
	return out
}

func totalAmount(items []models.CleanedItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

// buildRow lays out one order log row in models.RowColumns order.
func buildRow(ts time.Time, in models.OrderInput, items []models.CleanedItem, total float64) []any {
	products := make([]string, 0, len(items))
	customizations := make([]string, 0, len(items))
	previews := make([]string, 0)

	for _, item := range items {
		products = append(products, fmt.Sprintf("%s (x%d) @ %.2f", item.ProductName, item.Quantity, item.Price))

		if len(item.Customization) > 0 {
			keys := make([]string, 0, len(item.Customization))
			for k := range item.Customization {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			parts := make([]string, 0, len(keys))
			for _, k := range keys {
				parts = append(parts, validation.ToSnakeCase(k)+"="+item.Customization[k])
			}
			customizations = append(customizations, item.ProductName+": "+strings.Join(parts, ", "))
		}

		if item.UploadPreview != "" {
			previews = append(previews, fmt.Sprintf("%s %s=%s", item.ProductName, models.UploadPreviewKey, item.UploadPreview))
		}
	}

	return []any{
		ts.UTC().Format(time.RFC3339),
		in.Customer.Name,
		in.Customer.Email,
		in.Customer.Phone,
		in.Shipping.Street,
		in.Shipping.City,
		in.Shipping.State,
		in.Shipping.Zip,
		in.Shipping.Country,
		strings.Join(products, "; "),
		strings.Join(customizations, " | "),
		strings.Join(previews, " | "),
		fmt.Sprintf("%.2f", total),
		in.PaymentMethod,
		in.Notes,
	}
}
