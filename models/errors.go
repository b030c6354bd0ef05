package models

type Category string

const (
	CategoryNetwork     Category = "NETWORK"
	CategoryAuth        Category = "AUTH"
	CategoryValidation  Category = "VALIDATION"
	CategoryAPI         Category = "API"
	CategorySheetConfig Category = "SHEET_CONFIG"
	CategorySystem      Category = "SYSTEM"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// ActionTag is a recovery action the UI may offer. The set is closed.
type ActionTag string

const (
	ActionRetry          ActionTag = "retry"
	ActionSignIn         ActionTag = "sign_in"
	ActionSignOut        ActionTag = "sign_out"
	ActionContactSupport ActionTag = "contact_support"
	ActionClose          ActionTag = "close"
	ActionAutoRetry      ActionTag = "auto_retry"
	ActionManualRetry    ActionTag = "manual_retry"
	ActionSaveDraft      ActionTag = "save_draft"
)

type ClassifiedError struct {
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Status   int      `json:"status,omitempty"`
}

type ErrorPresentation struct {
	Title           string      `json:"title"`
	Message         string      `json:"message"`
	Troubleshooting []string    `json:"troubleshooting"`
	Actions         []ActionTag `json:"actions"`
	Severity        Severity    `json:"severity"`
	Category        Category    `json:"category"`
	CanRetry        bool        `json:"canRetry"`
	RequiresAuth    bool        `json:"requiresAuth"`
	ContactSupport  bool        `json:"contactSupport"`
	// Status is the HTTP status of the remote failure, 0 when there was none.
	Status          int         `json:"status,omitempty"`
}
