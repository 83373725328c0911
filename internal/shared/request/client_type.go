package request

import "strings"

const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
	ClientAPI    = "api"
)

// ResolveClientType decides how tokens should be delivered. An explicit
// X-Client-Type header wins; otherwise a browser user agent is treated as web.
func ResolveClientType(header, userAgent string) string {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	case ClientAPI:
		return ClientAPI
	}

	ua := strings.ToLower(userAgent)
	for _, marker := range []string{"mozilla", "chrome", "safari", "firefox", "edg"} {
		if strings.Contains(ua, marker) {
			return ClientWeb
		}
	}
	return ClientAPI
}

// IsWebClient reports whether tokens should be set as httponly cookies.
func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
