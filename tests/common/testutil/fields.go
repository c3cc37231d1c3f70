//go:build unit || e2e

package testutil

import "net/url"

// FormField sets key in a form; an empty value removes it.
func FormField(key, value string) func(url.Values) {
	return func(form url.Values) {
		if value == "" {
			form.Del(key)
		} else {
			form.Set(key, value)
		}
	}
}
