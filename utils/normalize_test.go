package utils

import (
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr error
	}{
		{
			name: "Already HTTPS",
			url:  "https://example.com",
			want: "https://example.com",
		},
		{
			name: "Already HTTP",
			url:  "http://example.com/path",
			want: "http://example.com/path",
		},
		{
			name: "Bare domain gains HTTPS",
			url:  "example.com",
			want: "https://example.com",
		},
		{
			name: "Bare domain with path and query",
			url:  "example.com/search?q=vitals",
			want: "https://example.com/search?q=vitals",
		},
		{
			name: "Bare domain with port",
			url:  "example.com:8443/app",
			want: "https://example.com:8443/app",
		},
		{
			name: "Scheme-relative",
			url:  "//cdn.example.com/bundle.js",
			want: "https://cdn.example.com/bundle.js",
		},
		{
			name: "Surrounding whitespace",
			url:  "  https://example.com  ",
			want: "https://example.com",
		},
		{
			name: "Whitespace around bare domain",
			url:  "\texample.com\n",
			want: "https://example.com",
		},
		{
			name:    "Empty",
			url:     "",
			wantErr: ErrEmptyURL,
		},
		{
			name:    "Whitespace only",
			url:     "   ",
			wantErr: ErrEmptyURL,
		},
		{
			name:    "Spaces inside",
			url:     "not a url",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "FTP scheme",
			url:     "ftp://example.com",
			wantErr: ErrInvalidScheme,
		},
		{
			name:    "Javascript scheme",
			url:     "javascript://alert(1)",
			wantErr: ErrInvalidScheme,
		},
		{
			name:    "Scheme without host",
			url:     "https://",
			wantErr: ErrEmptyHost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.url)
			if err != tt.wantErr {
				t.Errorf("NormalizeURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
				return
			}
			if err == nil && got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestNormalizeURLIdempotent(t *testing.T) {
	inputs := []string{"example.com", "//static.example.com/a.js", "https://example.com/x?y=1"}

	for _, input := range inputs {
		once, err := NormalizeURL(input)
		if err != nil {
			t.Fatalf("NormalizeURL(%q) error = %v", input, err)
		}
		twice, err := NormalizeURL(once)
		if err != nil {
			t.Fatalf("NormalizeURL(%q) error = %v", once, err)
		}
		if once != twice {
			t.Errorf("normalization not idempotent: %q -> %q -> %q", input, once, twice)
		}
	}
}
