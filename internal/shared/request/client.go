package request

import "strings"

type ClientType string

const (
	ClientWeb    ClientType = "web"
	ClientMobile ClientType = "mobile"
)

// ResolveClientType trusts an explicit X-Client-Type header first and falls
// back to sniffing the user agent.
func ResolveClientType(header, userAgent string) ClientType {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case string(ClientWeb):
		return ClientWeb
	case string(ClientMobile):
		return ClientMobile
	}

	ua := strings.ToLower(userAgent)
	for _, marker := range []string{"okhttp", "dart", "cfnetwork", "android", "iphone"} {
		if strings.Contains(ua, marker) {
			return ClientMobile
		}
	}
	return ClientWeb
}

func IsWebClient(t ClientType) bool {
	return t == ClientWeb
}
