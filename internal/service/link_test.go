package service

import (
	"testing"
)

func TestBuildSessionURL(t *testing.T) {
	tests := []struct {
		name   string
		webURL string
		id     string
		typ    string
		want   string
	}{
		{"agent session", "https://chat.example.com", "s-1", "agent", "https://chat.example.com/?session=s-1&type=agent"},
		{"trailing slash", "https://chat.example.com/", "s-1", "team", "https://chat.example.com/?session=s-1&type=team"},
		{"no type", "http://localhost:5173", "s 2", "", "http://localhost:5173/?session=s+2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSessionURL(tt.webURL, tt.id, tt.typ); got != tt.want {
				t.Errorf("BuildSessionURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSessionURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantID  string
		wantTyp string
		wantErr bool
	}{
		{"valid", "https://chat.example.com/?session=s-1&type=team", "s-1", "team", false},
		{"round trip escaping", "http://localhost:5173/?session=s+2", "s 2", "", false},
		{"missing session", "https://chat.example.com/?type=team", "", "", true},
		{"relative", "/?session=s-1", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, typ, err := ParseSessionURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSessionURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if id != tt.wantID || typ != tt.wantTyp {
				t.Errorf("ParseSessionURL() = %q, %q; want %q, %q", id, typ, tt.wantID, tt.wantTyp)
			}
		})
	}
}

func TestResolveSessionRef(t *testing.T) {
	if id, typ := ResolveSessionRef("https://chat.example.com/?session=abc&type=agent"); id != "abc" || typ != "agent" {
		t.Errorf("ResolveSessionRef(url) = %q, %q", id, typ)
	}
	if id, typ := ResolveSessionRef("abc"); id != "abc" || typ != "" {
		t.Errorf("ResolveSessionRef(id) = %q, %q", id, typ)
	}
}
