package checker

import "strings"

// blockedFragments covers the listing photo CDN plus analytics, ad and
// social tracking scripts. None of them contribute to the availability
// signal and several delay page settling.
var blockedFragments = []string{
	"a0.muscache.com",
	"www.googletagmanager.com",
	"google-analytics.com",
	"facebook.com",
	"doubleclick.net",
	"googlesyndication.com",
	"googleadservices.com",
	"googletag",
	"analytics.js",
	"gtag",
	"fbevents.js",
}

// ShouldAllow decides whether an outgoing request may reach the
// network. Stateless; installed per session on every route.
func ShouldAllow(requestURL string) bool {
	for _, fragment := range blockedFragments {
		if strings.Contains(requestURL, fragment) {
			return false
		}
	}
	return true
}
