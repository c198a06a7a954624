package i18n

import (
	"strings"

	"github.com/AlexYaroshenko/dotless/internal/textutil"
)

// Supported languages: Persian (fa, default) and English (en).
const (
	Persian = "fa"
	English = "en"

	Default = Persian
)

// Copy is plain text except for the keys in markup, which carry HTML.
var supported = map[string]map[string]string{
	Persian: {
		"start": "سلام!\n" +
			"من یه ربات ساده‌ام که نقطه‌های متنت رو پاک می‌کنه.\n" +
			"برای استفاده، توی هر چتی اسم منو تایپ کن و بعدش متنت رو بنویس تا بدون نقطه تحویل بگیری.",
		"inline_default_title":        "شروع به تایپ کن تا نقطه‌ها رو حذف کنم",
		"inline_default_description":  "هرچی اینجا بنویسی، من نقطه‌هاشو برات پاک می‌کنم.",
		"inline_default_text":         "برای استفاده از ربات، بعد از اسم من، متنت رو بنویس تا بدون نقطه تحویل بگیری.",
		"inline_replacer_title":       "متن بدون نقطه",
		"inline_replacer_description": "رو این کلیک کن تا متنت رو بدون نقطه ببینی!",
		"error_title":                 "<b>❌ خطا در پردازش پیام</b>",
		"error_result_title":          "❌ خطا",
		"error_result_description":    "هنگام پردازش درخواستت خطایی پیش اومد",
		"error_hint":                  "لطفاً دوباره امتحان کن یا اگر مشکل ادامه داشت با پشتیبانی تماس بگیر.",
		"error_reference":             "کد پیگیری",
		"error_label":                 "خطا",
	},
	English: {
		"start": "Hi!\n" +
			"I'm a simple bot that removes the dots from your text.\n" +
			"To use me, type my name in any chat followed by your text and pick the dotless result.",
		"inline_default_title":        "Start typing and I'll remove the dots",
		"inline_default_description":  "Whatever you write here comes back without dots.",
		"inline_default_text":         "To use the bot, type my name followed by your text to get it back without dots.",
		"inline_replacer_title":       "Dotless text",
		"inline_replacer_description": "Tap here to send your text without dots!",
		"error_title":                 "<b>❌ Error occurred while processing your request</b>",
		"error_result_title":          "❌ Error occurred",
		"error_result_description":    "An error occurred while processing your request",
		"error_hint":                  "Please try again or contact support if the problem persists.",
		"error_reference":             "Reference",
		"error_label":                 "Error",
	},
}

// markup lists the keys whose copy is HTML-formatted.
var markup = map[string]bool{
	"error_title": true,
}

// Lang maps a Telegram language_code to a supported language.
func Lang(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	if _, ok := supported[code]; ok {
		return code
	}
	return Default
}

// T returns the copy for key in lang, falling back to the default language
// and then to the key itself.
func T(lang, key string) string {
	if m, ok := supported[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := supported[Default][key]; ok {
		return v
	}
	return key
}

// Plain returns T(lang, key) with any HTML markup reduced to its text.
func Plain(lang, key string) string {
	s := T(lang, key)
	if !markup[key] {
		return s
	}
	if p, err := textutil.PlainText(s); err == nil {
		return p
	}
	return s
}
