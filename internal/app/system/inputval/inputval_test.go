package inputval

import "testing"

type viewInput struct {
	URL  string `validate:"required,httpurl" label:"URL"`
	Mode string `validate:"oneof=collapse inert" label:"Link handling"`
}

func TestValidate_OK(t *testing.T) {
	res := Validate(viewInput{URL: "https://example.com", Mode: "collapse"})
	if res.HasErrors() {
		t.Errorf("unexpected errors: %s", res.All())
	}
}

func TestValidate_Required(t *testing.T) {
	res := Validate(viewInput{Mode: "collapse"})
	if !res.HasErrors() {
		t.Fatal("expected a validation error")
	}
	if got := res.First(); got != "URL is required." {
		t.Errorf("First() = %q, want %q", got, "URL is required.")
	}
}

func TestValidate_HTTPURL(t *testing.T) {
	res := Validate(viewInput{URL: "https://bad host", Mode: "collapse"})
	if !res.HasErrors() {
		t.Fatal("expected a validation error")
	}
	if got := res.First(); got != "URL must be a valid URL starting with http:// or https://." {
		t.Errorf("First() = %q", got)
	}
}

func TestValidate_OneOf(t *testing.T) {
	res := Validate(viewInput{URL: "https://example.com", Mode: "shiny"})
	if !res.HasErrors() {
		t.Fatal("expected a validation error")
	}
	if got := res.First(); got != "Link handling must be one of: collapse, inert." {
		t.Errorf("First() = %q", got)
	}
}

func TestIsValidHTTPURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"  https://example.com  ", true},
		{"ftp://example.com", false},
		{"javascript:alert(1)", false},
		{"", false},
		{"not a url", false},
	}
	for _, tt := range tests {
		if got := IsValidHTTPURL(tt.in); got != tt.want {
			t.Errorf("IsValidHTTPURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
