package service

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildSessionURL constructs the web UI URL that reopens a session.
// Format: {webURL}/?session={id}&type={agent|team}
func BuildSessionURL(webURL, sessionID, sessionType string) string {
	base := strings.TrimRight(webURL, "/")
	q := url.Values{}
	q.Set("session", sessionID)
	if sessionType != "" {
		q.Set("type", sessionType)
	}
	return base + "/?" + q.Encode()
}

// ParseSessionURL extracts the session id and type from a web UI URL.
func ParseSessionURL(rawURL string) (sessionID, sessionType string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("invalid URL: missing scheme or host")
	}
	sessionID = u.Query().Get("session")
	if sessionID == "" {
		return "", "", fmt.Errorf("URL has no session parameter")
	}
	return sessionID, u.Query().Get("type"), nil
}

// ResolveSessionRef accepts either a session id or a web UI session URL.
func ResolveSessionRef(ref string) (sessionID, sessionType string) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if id, typ, err := ParseSessionURL(ref); err == nil {
			return id, typ
		}
	}
	return ref, ""
}
