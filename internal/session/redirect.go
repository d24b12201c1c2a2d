package session

import (
	"net/url"
	"strings"
)

const (
	PathLogin     = "/login"
	PathSignup    = "/signup"
	PathCallback  = "/callback"
	PathError     = "/error"
	PathDashboard = "/dashboard"

	defaultAuthError = "Authentication failed"
)

// IsAuthPage reports whether path belongs to the authentication flow. The
// check is a substring match on the path including its query.
func IsAuthPage(path string) bool {
	return strings.Contains(path, PathLogin) ||
		strings.Contains(path, PathSignup) ||
		strings.Contains(path, PathCallback) ||
		strings.Contains(path, PathError)
}

// NextPath decides where to navigate after the auth provider reports its
// result. currentPath is the path plus query string; redirectParam is the
// value of its redirect query parameter.
func NextPath(currentPath, redirectParam string, isAuthPage, userPresent bool) string {
	if userPresent {
		if redirectParam != "" {
			return redirectParam
		}
		if !isAuthPage {
			if !strings.Contains(currentPath, PathLogin) && !strings.Contains(currentPath, PathSignup) {
				return currentPath
			}
			return PathDashboard
		}
		return PathDashboard
	}

	if !isAuthPage {
		switch {
		case strings.Contains(currentPath, PathSignup):
			return PathSignup + "?redirect=" + currentPath
		case strings.Contains(currentPath, PathLogin):
			return PathLogin + "?redirect=" + currentPath
		default:
			return PathLogin
		}
	}
	if redirectParam != "" {
		for _, p := range []string{"error", "signup", "login", "callback"} {
			if strings.Contains(currentPath, p) {
				return currentPath
			}
		}
		return PathLogin + "?redirect=" + redirectParam
	}
	if isAuthPage {
		return currentPath
	}
	return PathLogin
}

// ResolveNext derives the redirect parameter and auth-page flag from
// currentPath and applies NextPath.
func ResolveNext(currentPath string, userPresent bool) string {
	return NextPath(currentPath, RedirectParam(currentPath), IsAuthPage(currentPath), userPresent)
}

// RedirectParam extracts the redirect query parameter from a path with query.
func RedirectParam(pathWithQuery string) string {
	_, rawQuery, found := strings.Cut(pathWithQuery, "?")
	if !found {
		return ""
	}
	// ParseQuery keeps every well-formed pair when it reports an error.
	values, _ := url.ParseQuery(rawQuery)
	return values.Get("redirect")
}

// ErrorPath is the error page URL for an auth failure message.
func ErrorPath(message string) string {
	if message == "" {
		message = defaultAuthError
	}
	return PathError + "?message=" + EncodeURIComponent(message)
}

// LoginRedirect is where an anonymous visitor of a protected page is sent.
func LoginRedirect(pathWithQuery string) string {
	return PathLogin + "?redirect=" + EncodeURIComponent(pathWithQuery)
}

var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers do for a URI component:
// everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded.
func EncodeURIComponent(s string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(s))
}
