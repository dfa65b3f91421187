package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteName(t *testing.T) {
	tests := map[string]string{
		"back_to_main":               "back_to_main",
		"noop":                       "noop",
		"week:20250811":              "week",
		"week_refresh:20250811":      "week_refresh",
		"week_day:20250811:20250813": "week_day",
		"lesson:20250811:42":         "lesson",
		"filter_page:1":              "filter_page",
		"filter_toggle:1-9:0":        "filter_toggle",
		"filter_clear":               "filter_clear",
		"export:xlsx:20250811":       "export",
		"login_start":                "login_start",
		"login_school:3":             "login_school",
		"logout_ask":                 "logout_ask",
		"logout_confirm":             "logout_confirm",
		"book_lesson:5":              "unknown",
		"":                           "unknown",
	}

	for data, want := range tests {
		assert.Equal(t, want, routeName(data), data)
	}
}
