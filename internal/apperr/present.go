package apperr

import (
	"net/http"
	"strings"

	"storefront-orders/models"
)

// Present builds the user-facing description of err.
func Present(err error, online bool) models.ErrorPresentation {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return PresentClassified(Classify(err, online), message)
}

// PresentClassified is a pure function of the classification and the
// original error message. The copy per category is fixed.
func PresentClassified(c models.ClassifiedError, message string) models.ErrorPresentation {
	var p models.ErrorPresentation

	switch c.Category {
	case models.CategoryNetwork:
		p = models.ErrorPresentation{
			Title:   "Connection problem",
			Message: "We couldn't reach our order service. Your cart is safe, please check your connection and try again.",
			Troubleshooting: []string{
				"Check that you are connected to the internet",
				"Turn off VPN or proxy if you use one",
				"Wait a few seconds and try again",
			},
			Actions:  []models.ActionTag{models.ActionRetry, models.ActionSaveDraft},
			CanRetry: true,
		}
	case models.CategoryAuth:
		p = models.ErrorPresentation{
			Title:   "Sign-in required",
			Message: "Your session has expired or you are not signed in. Please sign in again to place the order.",
			Troubleshooting: []string{
				"Sign in again with your account",
				"Allow pop-ups for this site so the sign-in window can open",
				"Clear the site cookies if signing in keeps failing",
			},
			Actions:      []models.ActionTag{models.ActionSignIn, models.ActionClose},
			RequiresAuth: true,
		}
	case models.CategoryValidation:
		p = models.ErrorPresentation{
			Title:   "Please check your details",
			Message: validationMessage(message),
			Troubleshooting: []string{
				"Review the highlighted fields",
				"Make sure email, phone and ZIP code are in the right format",
				"Remove special characters from names and addresses",
			},
			Actions: []models.ActionTag{models.ActionClose},
		}
	case models.CategoryAPI:
		p = presentAPI(c.Status)
	case models.CategorySheetConfig:
		p = models.ErrorPresentation{
			Title:   "Order storage is not available",
			Message: "Our order system is misconfigured and can't record orders right now. Our team has to fix this on our side.",
			Troubleshooting: []string{
				"Try again in a few minutes",
				"Contact support and mention that the order sheet is unavailable",
			},
			Actions:        []models.ActionTag{models.ActionRetry, models.ActionContactSupport},
			CanRetry:       true,
			ContactSupport: true,
		}
	default:
		p = models.ErrorPresentation{
			Title:   "Something went wrong",
			Message: "An unexpected error occurred while placing your order. Please try again.",
			Troubleshooting: []string{
				"Refresh the page and try again",
				"Try a different browser",
				"Contact support if the problem continues",
			},
			Actions:        []models.ActionTag{models.ActionRetry, models.ActionContactSupport},
			CanRetry:       true,
			ContactSupport: true,
		}
	}

	p.Category = c.Category
	p.Status = c.Status
	p.Severity = c.Severity
	if p.Severity == "" {
		p.Severity = severityOf(c.Category, c.Status)
	}
	return p
}

func presentAPI(status int) models.ErrorPresentation {
	switch status {
	case http.StatusTooManyRequests:
		return models.ErrorPresentation{
			Title:   "Too many requests",
			Message: "We are receiving a lot of orders right now. We will retry automatically in a moment.",
			Troubleshooting: []string{
				"Wait about a minute before trying again",
				"Don't submit the same order twice",
			},
			Actions:  []models.ActionTag{models.ActionAutoRetry, models.ActionManualRetry},
			CanRetry: true,
		}
	case http.StatusForbidden:
		return models.ErrorPresentation{
			Title:   "Permission denied",
			Message: "Your account doesn't have permission to place this order. Sign out and sign in with another account or contact support.",
			Troubleshooting: []string{
				"Sign out and sign in with the account you used for shopping",
				"Contact support to check your account permissions",
			},
			Actions:        []models.ActionTag{models.ActionSignOut, models.ActionContactSupport},
			ContactSupport: true,
		}
	default:
		return models.ErrorPresentation{
			Title:   "Order service error",
			Message: "The order service returned an error. Please try again.",
			Troubleshooting: []string{
				"Try again in a few moments",
				"Contact support if the problem continues",
			},
			Actions:        []models.ActionTag{models.ActionRetry, models.ActionContactSupport},
			CanRetry:       true,
			ContactSupport: true,
		}
	}
}

// PresentIntegrityFault describes a malformed product payload. Retrying would
// send the same payload again, so no retry is offered.
func PresentIntegrityFault() models.ErrorPresentation {
	return models.ErrorPresentation{
		Title:   "We couldn't process your cart",
		Message: "Some product details in your cart are incomplete. Your order was not placed. Please contact support so we can help you finish it.",
		Troubleshooting: []string{
			"Don't resubmit the order, it will fail the same way",
			"Contact support, we have saved a copy of your order details",
		},
		Actions:        []models.ActionTag{models.ActionContactSupport, models.ActionClose},
		Severity:       models.SeverityCritical,
		Category:       models.CategorySystem,
		ContactSupport: true,
	}
}

func validationMessage(original string) string {
	const base = "Some of the order details are invalid."
	original = strings.TrimSpace(original)
	if original == "" {
		return base
	}
	return base + " " + original
}
