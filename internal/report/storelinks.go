package report

import (
	"strings"
	"unicode"

	"github.com/adsight/moloco-crm/internal/models"
)

// StoreLinksFor derives App Store / Google Play page URLs from an app bundle
// ID. Numeric or "id"-prefixed bundles are treated as iOS track IDs;
// reverse-DNS bundles as Android package names. Unknown shapes yield empty
// links.
func StoreLinksFor(bundleID, os string) models.StoreLinks {
	var links models.StoreLinks

	bundleID = strings.TrimSpace(bundleID)
	if bundleID == "" {
		return links
	}

	platform := strings.ToLower(strings.TrimSpace(os))
	if platform == "" {
		switch {
		case isAndroidBundle(bundleID):
			platform = "android"
		case isNumeric(bundleID) || strings.HasPrefix(bundleID, "id"):
			platform = "ios"
		}
	}

	if platform == "ios" || isNumeric(bundleID) {
		if id := numericPart(bundleID); id != "" {
			links.AppStore = "https://apps.apple.com/app/id" + id
		}
	}
	if platform == "android" || isAndroidBundle(bundleID) {
		links.GooglePlay = "https://play.google.com/store/apps/details?id=" + bundleID
	}
	return links
}

func isAndroidBundle(bundleID string) bool {
	return strings.HasPrefix(bundleID, "com.") ||
		strings.HasPrefix(bundleID, "org.") ||
		strings.HasPrefix(bundleID, "net.")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// numericPart returns the first run of digits in s, or "" when none exists.
func numericPart(s string) string {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			return s[start:i]
		}
	}
	if start != -1 {
		return s[start:]
	}
	return ""
}
