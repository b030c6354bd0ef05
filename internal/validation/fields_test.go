package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr string
	}{
		{"asha@example.com", ""},
		{"  asha@example.co.in ", ""},
		{"", "Email is required"},
		{"invalid-email", "Please enter a valid email address"},
		{"test@domain", "Please enter a valid email address"},
		{"@domain.com", "Please enter a valid email address"},
		{"ravi@GMIAL.com", "Did you mean ravi@gmail.com?"},
		{"ravi@yahooo.com", "Did you mean ravi@yahoo.com?"},
		{strings.Repeat("a", 250) + "@x.com", "Email cannot exceed 254 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			r := ValidateEmail(tt.email)
			assert.Equal(t, tt.wantErr == "", r.IsValid)
			assert.Equal(t, tt.wantErr, r.Error)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone   string
		wantErr string
	}{
		{"+91 98765 43210", ""},
		{"919876543210", ""},
		{"+1 (555) 123-4567", ""},
		{"+91 58765 43210", "Indian mobile numbers must start with 6, 7, 8 or 9"},
		{"+91 98765 4321", "Indian phone numbers must have 10 digits after +91"},
		{"12345", "Phone number must have between 10 and 15 digits"},
		{"+1234567890123456", "Phone number must have between 10 and 15 digits"},
		{"555-abc-1234", "Phone number can only contain digits, spaces, hyphens, parentheses and a leading +"},
		{"", "Phone number is required"},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			r := ValidatePhone(tt.phone)
			assert.Equal(t, tt.wantErr == "", r.IsValid)
			assert.Equal(t, tt.wantErr, r.Error)
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr string
	}{
		{"Jean-Luc O'Neil", ""},
		{"José Álvarez", ""},
		{"A", "Name must be at least 2 characters"},
		{strings.Repeat("a", 101), "Name cannot exceed 100 characters"},
		{"R2D2", "Name can only contain letters, spaces, hyphens and apostrophes"},
		{"John  Smith", "Name cannot contain consecutive spaces"},
		{"   ", "Name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateName(tt.name)
			assert.Equal(t, tt.wantErr == "", r.IsValid)
			assert.Equal(t, tt.wantErr, r.Error)
		})
	}
}

func TestValidateCityAndState(t *testing.T) {
	assert.True(t, ValidateCity("New Delhi").IsValid)
	assert.Equal(t, "City is required", ValidateCity("").Error)
	assert.True(t, ValidateState("Tamil Nadu").IsValid)
	assert.Equal(t, "State can only contain letters, spaces, hyphens and apostrophes", ValidateState("T.N.").Error)
}

func TestValidateAddress(t *testing.T) {
	assert.True(t, ValidateAddress("221B Baker Street").IsValid)
	assert.Equal(t, "Address must be at least 5 characters", ValidateAddress("MG").Error)
	assert.Equal(t, "Address cannot exceed 200 characters", ValidateAddress(strings.Repeat("x", 201)).Error)
	assert.Equal(t, "Address is required", ValidateAddress(" ").Error)
}

func TestValidateZip(t *testing.T) {
	tests := []struct {
		zip, country string
		valid        bool
	}{
		{"560038", "India", true},
		{"560038", " india ", true},
		{"56003", "India", false},
		{"56003A", "India", false},
		{"SW1A 1AA", "United Kingdom", true},
		{"90210-1234", "USA", true},
		{"1234", "USA", false},
		{"12345678901", "", false},
		{"", "USA", false},
	}
	for _, tt := range tests {
		t.Run(tt.zip+"/"+tt.country, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateZip(tt.zip, tt.country).IsValid)
		})
	}
}

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"one", 1, ""},
		{"hundred", 100, ""},
		{"numeric string", "3", ""},
		{"float whole", float64(7), ""},
		{"zero", 0, "Quantity must be at least 1"},
		{"too many", 101, "Quantity cannot exceed 100"},
		{"fraction", 2.5, "Quantity must be a whole number"},
		{"text", "abc", "Quantity must be a number"},
		{"nil", nil, "Quantity must be a number"},
		{"json number", json.Number("12"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateQuantity(tt.value)
			assert.Equal(t, tt.wantErr == "", r.IsValid)
			assert.Equal(t, tt.wantErr, r.Error)
		})
	}
}

func TestValidateMessage(t *testing.T) {
	assert.True(t, ValidateMessage("", FieldOptions{}).IsValid)
	assert.Equal(t, "Message is required", ValidateMessage("  ", FieldOptions{Required: true}).Error)
	assert.Equal(t, "Message cannot exceed 500 characters", ValidateMessage(strings.Repeat("я", 501), FieldOptions{}).Error)
	assert.True(t, ValidateMessage(strings.Repeat("я", 500), FieldOptions{}).IsValid)
}

func TestValidateFile(t *testing.T) {
	assert.True(t, ValidateFile(nil, FieldOptions{}).IsValid)
	assert.Equal(t, "Please upload a file", ValidateFile(nil, FieldOptions{Required: true}).Error)
	assert.True(t, ValidateFile(&FileInfo{Name: "logo.png", Size: 1024, MIMEType: "image/png"}, FieldOptions{}).IsValid)
	assert.Equal(t, "File size cannot exceed 5MB",
		ValidateFile(&FileInfo{Name: "big.jpg", Size: 6 * 1024 * 1024, MIMEType: "image/jpeg"}, FieldOptions{}).Error)
	assert.Equal(t, "Only JPEG, PNG, GIF and WebP images are allowed",
		ValidateFile(&FileInfo{Name: "doc.pdf", Size: 10, MIMEType: "application/pdf"}, FieldOptions{}).Error)
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<script>alert(1)</script>Hello", "Hello"},
		{"  <b>Bold</b> text  ", "Bold text"},
		{"<style>p{}</style><p>Hi</p>", "Hi"},
		{"plain", "plain"},
		{"<<b>b>nested", "b>nested"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SanitizeInput(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, SanitizeInput(got), "повторная очистка не должна ничего менять")
		})
	}
}

func TestSanitize_NonStringPassesThrough(t *testing.T) {
	assert.Equal(t, 42, Sanitize(42))
	assert.Equal(t, true, Sanitize(true))
	assert.Nil(t, Sanitize(nil))
	assert.Equal(t, "x", Sanitize("<i>x</i>"))
}
