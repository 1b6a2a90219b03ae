// Package favicon derives favicon URLs for bookmarks that were saved
// without one.
package favicon

import (
	"fmt"
	"net/url"
)

// serviceTemplate is the external favicon service a bookmark's host is
// substituted into.
const serviceTemplate = "https://www.google.com/s2/favicons?domain=%s&sz=64"

// Derive returns the favicon service URL for the host of rawURL.
// The result is deterministic: the same bookmark URL always yields the
// same favicon URL. Unparsable URLs and URLs without a host yield "".
func Derive(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return fmt.Sprintf(serviceTemplate, u.Hostname())
}
