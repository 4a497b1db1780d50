package normalize

import "testing"

func TestWrappedURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"standard wrapped input", "https://abc://example.com/page", "https://example.com/page"},
		{"multiple markers take last segment", "https://a://b://example.com", "https://example.com"},
		{"plain https URL passes through", "https://example.com", "https://example.com"},
		{"plain http URL keeps its scheme", "http://example.com", "http://example.com"},
		{"no scheme at all", "example.com/page", "https://example.com/page"},
		{"whitespace around target", "https://abc://  example.com ", "https://example.com"},
		{"empty input", "", ""},
		{"marker with nothing after", "https://abc://", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrappedURL(tt.input)
			if got != tt.want {
				t.Errorf("WrappedURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https URL", "https://example.com/page?q=1", false},
		{"http URL", "http://example.com", false},
		{"missing host", "https://", true},
		{"ftp scheme", "ftp://example.com", true},
		{"no scheme", "example.com", true},
		{"garbage", "://///", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && parsed.Host == "" {
				t.Errorf("Validate(%q) returned URL with empty host", tt.input)
			}
		})
	}
}

func TestInput(t *testing.T) {
	if got := Input("  https://x://example.com  "); got != "https://x://example.com" {
		t.Errorf("Input() = %q, want trimmed value", got)
	}
}
