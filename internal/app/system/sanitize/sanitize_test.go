package sanitize

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"collapse", ModeCollapse, false},
		{"inert", ModeInert, false},
		{"  Collapse ", ModeCollapse, false},
		{"INERT", ModeInert, false},
		{"", "", true},
		{"strict", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_Collapse(t *testing.T) {
	eng := New(ModeCollapse, zap.NewNop())

	tests := []struct {
		name     string
		input    string
		contains []string // Strings that should be in output
		excludes []string // Strings that should NOT be in output
	}{
		{
			name:     "script removed with content",
			input:    `<p>Hello</p><script>steal()</script>`,
			contains: []string{"<p>Hello</p>"},
			excludes: []string{"<script", "steal"},
		},
		{
			name:     "iframe removed",
			input:    `<iframe src="http://evil.test/frame"></iframe><p>Content</p>`,
			contains: []string{"<p>Content</p>"},
			excludes: []string{"<iframe", "evil.test"},
		},
		{
			name:     "object embed noscript base removed",
			input:    `<object data="x"></object><embed src="y"><noscript>n</noscript><base href="http://evil.test/">`,
			contains: []string{},
			excludes: []string{"<object", "<embed", "<noscript", "<base"},
		},
		{
			name:     "meta removed unconditionally",
			input:    `<head><meta charset="utf-8"><meta http-equiv="refresh" content="0;url=http://evil.test"></head>`,
			contains: []string{},
			excludes: []string{"<meta", "refresh", "evil.test"},
		},
		{
			name:     "link removed",
			input:    `<link rel="stylesheet" href="http://evil.test/a.css"><p>x</p>`,
			contains: []string{"<p>x</p>"},
			excludes: []string{"<link", "a.css"},
		},
		{
			name:     "media elements removed",
			input:    `<video src="v.mp4"></video><audio src="a.mp3"></audio><track src="t.vtt"><p>text</p>`,
			contains: []string{"<p>text</p>"},
			excludes: []string{"<video", "<audio", "<track", ".mp4", ".mp3"},
		},
		{
			name:     "img src deleted and alt placeholder set",
			input:    `<img src="http://evil.test/x.png">`,
			contains: []string{"<img", `alt="[image disabled]"`},
			excludes: []string{"src=", "evil.test"},
		},
		{
			name:     "img existing alt preserved",
			input:    `<img src="http://evil.test/x.png" alt="a cat">`,
			contains: []string{`alt="a cat"`},
			excludes: []string{"src=", "[image disabled]"},
		},
		{
			name:     "srcset deleted everywhere",
			input:    `<img srcset="a.png 1x, b.png 2x" src="a.png">`,
			contains: []string{"<img"},
			excludes: []string{"srcset"},
		},
		{
			name:     "external href collapsed",
			input:    `<a href="http://evil.test">click</a>`,
			contains: []string{`href="#"`, ">click</a>"},
			excludes: []string{"evil.test"},
		},
		{
			name:     "anchor href kept",
			input:    `<a href="#section">jump</a>`,
			contains: []string{`href="#section"`},
			excludes: []string{},
		},
		{
			name:     "mailto href kept",
			input:    `<a href="mailto:a@b.test">mail</a>`,
			contains: []string{`href="mailto:a@b.test"`},
			excludes: []string{},
		},
		{
			name:     "relative href collapsed",
			input:    `<a href="/page/two">next</a>`,
			contains: []string{`href="#"`},
			excludes: []string{"/page/two"},
		},
		{
			name:     "onclick stripped with text preserved",
			input:    `<div onclick="steal()">hi</div>`,
			contains: []string{">hi</div>"},
			excludes: []string{"onclick", "steal"},
		},
		{
			name:     "event handlers stripped on any tag",
			input:    `<body onload="a()"><td onmouseover="b()">x</td></body>`,
			contains: []string{"x"},
			excludes: []string{"onload", "onmouseover"},
		},
		{
			name:     "mixed-case handler stripped",
			input:    `<div ONCLICK="steal()">hi</div>`,
			contains: []string{"hi"},
			excludes: []string{"onclick", "ONCLICK", "steal"},
		},
		{
			name:     "form neutralized and submit disabled",
			input:    `<form action="http://evil.test/collect" method="post"><input type="submit"></form>`,
			contains: []string{`action="#"`, `method="get"`, `disabled="disabled"`},
			excludes: []string{"evil.test", "post"},
		},
		{
			name:     "text input not disabled",
			input:    `<form action="/f"><input type="text" name="q"><input type="image" src="s.png"></form>`,
			contains: []string{`name="q"`, `disabled="disabled"`},
			excludes: []string{},
		},
		{
			name:     "typeless input not disabled",
			input:    `<form action="/f"><input name="q"></form>`,
			contains: []string{`name="q"`},
			excludes: []string{`disabled="disabled"`},
		},
		{
			name:     "typeless button disabled",
			input:    `<form action="/f"><button>go</button></form>`,
			contains: []string{"<button", `disabled="disabled"`},
			excludes: []string{},
		},
		{
			name:     "comments removed",
			input:    `<p>a</p><!--[if IE]><script>x()</script><![endif]-->`,
			contains: []string{"<p>a</p>"},
			excludes: []string{"<!--", "if IE"},
		},
		{
			name:     "notice injected",
			input:    `<p>page</p>`,
			contains: []string{noticeText, noticeMarkerAttr},
			excludes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eng.Sanitize(tt.input)

			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("Sanitize() result should contain %q, got %q", s, result)
				}
			}

			for _, s := range tt.excludes {
				if strings.Contains(result, s) {
					t.Errorf("Sanitize() result should NOT contain %q, got %q", s, result)
				}
			}
		})
	}
}

func TestSanitize_Inert(t *testing.T) {
	eng := New(ModeInert, zap.NewNop())

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "href prefixed with inert marker",
			input:    `<a href="http://evil.test/page">click</a>`,
			contains: []string{`href="` + InertPrefix + `http://evil.test/page"`, ">click</a>"},
			excludes: []string{`href="http://evil.test`},
		},
		{
			name:     "img src prefixed and alt placeholder set",
			input:    `<img src="http://evil.test/x.png">`,
			contains: []string{`src="` + InertPrefix + `http://evil.test/x.png"`, `alt="[image disabled]"`},
			excludes: []string{`src="http://evil.test`},
		},
		{
			name:     "anchor href kept",
			input:    `<a href="#top">up</a>`,
			contains: []string{`href="#top"`},
			excludes: []string{InertPrefix},
		},
		{
			name:     "script still removed",
			input:    `<script src="http://evil.test/x.js"></script><p>y</p>`,
			contains: []string{"<p>y</p>"},
			excludes: []string{"<script", "x.js"},
		},
		{
			name:     "forms still neutralized",
			input:    `<form action="http://evil.test/collect"><input type="submit"></form>`,
			contains: []string{`action="#"`, `disabled="disabled"`},
			excludes: []string{"evil.test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eng.Sanitize(tt.input)

			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("Sanitize() result should contain %q, got %q", s, result)
				}
			}

			for _, s := range tt.excludes {
				if strings.Contains(result, s) {
					t.Errorf("Sanitize() result should NOT contain %q, got %q", s, result)
				}
			}
		})
	}
}

func TestSanitize_EmptyInput(t *testing.T) {
	for _, mode := range []Mode{ModeCollapse, ModeInert} {
		t.Run(string(mode), func(t *testing.T) {
			result := New(mode, zap.NewNop()).Sanitize("")
			if result == "" {
				t.Fatal("Sanitize(\"\") returned empty string")
			}
			if !strings.Contains(result, "<html") || !strings.Contains(result, "<body") {
				t.Errorf("Sanitize(\"\") should produce a well-formed document, got %q", result)
			}
			if !strings.Contains(result, noticeText) {
				t.Errorf("Sanitize(\"\") should contain the notice, got %q", result)
			}
		})
	}
}

func TestSanitize_MalformedInput(t *testing.T) {
	eng := New(ModeCollapse, zap.NewNop())

	inputs := []string{
		"<div><p>unclosed",
		"<<<>>>",
		"<a href=>text",
		"plain text, no markup",
		"<script><script><iframe>",
	}

	for _, input := range inputs {
		result := eng.Sanitize(input)
		if result == "" {
			t.Errorf("Sanitize(%q) returned empty string", input)
		}
		if strings.Contains(result, "<script") || strings.Contains(result, "<iframe") {
			t.Errorf("Sanitize(%q) left a removed tag in output: %q", input, result)
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	input := `<html><head><meta charset="utf-8"></head><body>` +
		`<a href="http://evil.test">x</a>` +
		`<img src="http://evil.test/i.png" srcset="a 1x">` +
		`<form action="http://evil.test"><input type="submit"></form>` +
		`<div onclick="z()">c</div></body></html>`

	for _, mode := range []Mode{ModeCollapse, ModeInert} {
		t.Run(string(mode), func(t *testing.T) {
			eng := New(mode, zap.NewNop())
			first := eng.Sanitize(input)
			second := eng.Sanitize(first)
			if first != second {
				t.Errorf("Sanitize() not idempotent:\nfirst  = %q\nsecond = %q", first, second)
			}
			if strings.Count(second, noticeText) != 1 {
				t.Errorf("notice should appear exactly once after two passes, got %d", strings.Count(second, noticeText))
			}
		})
	}
}

func TestSanitize_NoticeFirstInBody(t *testing.T) {
	eng := New(ModeCollapse, zap.NewNop())
	result := eng.Sanitize(`<html><body><p>first paragraph</p></body></html>`)

	noticeIdx := strings.Index(result, noticeMarkerAttr)
	paraIdx := strings.Index(result, "first paragraph")
	if noticeIdx == -1 || paraIdx == -1 {
		t.Fatalf("output missing notice or content: %q", result)
	}
	if noticeIdx > paraIdx {
		t.Errorf("notice should precede page content, got %q", result)
	}
}

func TestSanitize_NestedRemovedTags(t *testing.T) {
	eng := New(ModeCollapse, zap.NewNop())
	result := eng.Sanitize(`<noscript><iframe src="x"></iframe><meta charset="y"></noscript><p>keep</p>`)

	if !strings.Contains(result, "<p>keep</p>") {
		t.Errorf("content outside removed tags should survive, got %q", result)
	}
	for _, tag := range []string{"<noscript", "<iframe", "<meta"} {
		if strings.Contains(result, tag) {
			t.Errorf("output should not contain %q, got %q", tag, result)
		}
	}
}

func TestEffectiveType(t *testing.T) {
	eng := New(ModeCollapse, zap.NewNop())

	// A reset button is not submit-capable and keeps working as a no-op
	// inside a neutralized form.
	result := eng.Sanitize(`<form action="/f"><button type="reset">clear</button></form>`)
	if strings.Contains(result, `disabled="disabled"`) {
		t.Errorf("reset button should not be disabled, got %q", result)
	}
}
