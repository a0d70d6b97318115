package constant

// Placeholder profile values for users created on first verification.
const (
	PlaceholderFullName  = "New User"
	PlaceholderHairColor = "unknown"
)

// MinPhoneDigits is the minimum number of digits a phone number must carry
// before normalization is attempted.
const MinPhoneDigits = 10

// DefaultCountryCode is prefixed to bare national numbers during
// normalization.
const DefaultCountryCode = "1"
