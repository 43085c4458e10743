// Package auth carries the verified caller identity through a request and
// verifies bearer tokens issued by the external identity provider.
package auth

import (
	"context"
	"strings"
)

type subjectKey struct{}

// WithSubject returns a context carrying an already verified subject.
// An empty subject leaves ctx anonymous.
func WithSubject(ctx context.Context, subject string) context.Context {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return ctx
	}
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromContext returns the verified subject, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	subject, ok := ctx.Value(subjectKey{}).(string)
	return subject, ok && subject != ""
}
