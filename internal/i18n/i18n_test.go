package i18n

import (
	"strings"
	"testing"
)

func TestLang(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"", Persian},
		{"fa", Persian},
		{"en", English},
		{"en-US", English},
		{"EN_gb", English},
		{"de", Persian},
	}
	for _, tt := range tests {
		if got := Lang(tt.code); got != tt.want {
			t.Errorf("Lang(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestT(t *testing.T) {
	if got := T(English, "error_label"); got != "Error" {
		t.Errorf("T(en, error_label) = %q", got)
	}
	if got := T("xx", "error_label"); got != supported[Persian]["error_label"] {
		t.Errorf("unknown language should fall back to Persian, got %q", got)
	}
	if got := T(English, "no_such_key"); got != "no_such_key" {
		t.Errorf("missing key should return the key, got %q", got)
	}
}

func TestLanguagesHaveSameKeys(t *testing.T) {
	for lang, m := range supported {
		for key := range supported[Default] {
			if _, ok := m[key]; !ok {
				t.Errorf("language %q is missing key %q", lang, key)
			}
		}
	}
}

func TestPlain(t *testing.T) {
	if got := Plain(English, "error_title"); got != "❌ Error occurred while processing your request" {
		t.Errorf("Plain(en, error_title) = %q", got)
	}
	if got := Plain(Persian, "start"); got != T(Persian, "start") {
		t.Errorf("Plain should leave plain copy untouched, got %q", got)
	}
}

func TestOnlyMarkupKeysCarryHTML(t *testing.T) {
	for lang, m := range supported {
		for key, text := range m {
			if strings.Contains(text, "<") != markup[key] {
				t.Errorf("%s/%s: markup flag disagrees with copy %q", lang, key, text)
			}
		}
	}
}
