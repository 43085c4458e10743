package http

import (
	"net/http"

	"golang.org/x/text/language"
)

var supportedLocales = []language.Tag{language.English, language.French}

var localeMatcher = language.NewMatcher(supportedLocales)

// requestLocale picks the best supported locale from Accept-Language.
func requestLocale(r *http.Request) string {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return supportedLocales[idx].String()
}
