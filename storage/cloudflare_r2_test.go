package storage

import "testing"

func TestGetPublicURLJoinsBasePath(t *testing.T) {
	cases := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"plain host", "https://cdn.example.com", "logos/team_1.png", "https://cdn.example.com/logos/team_1.png"},
		{"base with path segment", "https://cdn.example.com/media", "logos/team_1.png", "https://cdn.example.com/media/logos/team_1.png"},
		{"base with trailing slash", "https://cdn.example.com/media/", "logos/team_1.png", "https://cdn.example.com/media/logos/team_1.png"},
		{"key with leading slash", "https://cdn.example.com/media", "/logos/team_1.png", "https://cdn.example.com/media/logos/team_1.png"},
		{"empty key", "https://cdn.example.com", "", ""},
		{"empty base", "", "logos/team_1.png", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			u := &cloudflareR2Uploader{publicBaseURL: c.base}
			if got := u.GetPublicURL(c.key); got != c.want {
				t.Errorf("GetPublicURL(%q) = %q, want %q", c.key, got, c.want)
			}
		})
	}
}

func TestNewCloudflareR2UploaderRejectsIncompleteConfig(t *testing.T) {
	_, err := NewCloudflareR2Uploader(CloudflareR2Config{AccountID: "acct"})
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
}
