package discord

import "openconference/internal/ports/output"

// ErrorReply turns err into the ephemeral text shown to the caller. Errors
// without a domain code get the translator's generic message.
func ErrorReply(tr output.Translator, locale string, err error) string {
	if err == nil {
		return ""
	}
	return "❌ " + tr.ErrorMessage(locale, err)
}
