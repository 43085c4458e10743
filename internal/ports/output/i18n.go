package output

// Translator renders user-facing text for a locale. Adapters use it to turn
// domain error codes into messages; the core never formats text itself.
type Translator interface {
	// T renders key for locale; data feeds template placeholders and may be nil.
	// Unknown keys fall back to the default locale, then to the key itself.
	T(locale, key string, data map[string]any) string
	// ErrorMessage renders the message for a domain error, or a generic
	// message when err carries no domain code.
	ErrorMessage(locale string, err error) string
}
