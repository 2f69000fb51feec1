package utils

import (
	"strings"
)

// RenderTemplate replaces {name}-style placeholders in a message template
// with per-contact values. Placeholders without a value are left in place so
// a misconfigured template is visible in the materialized message.
func RenderTemplate(template string, vars map[string]string) string {
	result := template
	for k, v := range vars {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}
