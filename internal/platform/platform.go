// Package platform derives a capability profile from environment-reported
// identifiers. Detection is pure signature matching over the signals the
// browsing environment exposes; absent or partial signals read as false.
package platform

import "strings"

// Environment carries the raw signals reported by a browsing environment.
// Zero values are valid and simply mean the signal was not reported.
type Environment struct {
	UserAgent       string
	Platform        string // e.g. "MacIntel", "Win32"
	MaxTouchPoints  int
	HasMediaDevices bool // getUserMedia-style capture is available
	HasShareAPI     bool // native share sheet is available
}

// Profile is the computed capability profile used to adapt UI affordances.
type Profile struct {
	IsIOS     bool `json:"isIOS"`
	IsAndroid bool `json:"isAndroid"`
	IsMac     bool `json:"isMac"`
	IsWindows bool `json:"isWindows"`
	IsMobile  bool `json:"isMobile"`
	IsSafari  bool `json:"isSafari"`
	HasCamera bool `json:"hasCamera"`
	HasShare  bool `json:"hasShare"`
}

// Detect computes the capability profile for env. It never fails; unknown
// environments produce an all-false profile.
func Detect(env Environment) Profile {
	ua := strings.ToLower(env.UserAgent)

	// iPadOS 13+ masquerades as MacIntel but reports multitouch.
	isIOS := containsAny(ua, "ipad", "iphone", "ipod") ||
		(env.Platform == "MacIntel" && env.MaxTouchPoints > 1)
	isAndroid := strings.Contains(ua, "android")
	isMac := strings.HasPrefix(env.Platform, "Mac") && !isIOS
	isWindows := strings.HasPrefix(env.Platform, "Win")

	isSafari := strings.Contains(ua, "safari") &&
		!containsAny(ua, "chrome", "chromium", "crios", "edg/", "android")

	return Profile{
		IsIOS:     isIOS,
		IsAndroid: isAndroid,
		IsMac:     isMac,
		IsWindows: isWindows,
		IsMobile:  isIOS || isAndroid,
		IsSafari:  isSafari,
		HasCamera: env.HasMediaDevices,
		HasShare:  env.HasShareAPI,
	}
}

// CSSClasses returns the platform classes the UI applies to the document body.
func (p Profile) CSSClasses() []string {
	var classes []string
	if p.IsIOS {
		classes = append(classes, "ios")
	}
	if p.IsAndroid {
		classes = append(classes, "android")
	}
	if p.IsMac {
		classes = append(classes, "macos")
	}
	if p.IsWindows {
		classes = append(classes, "windows")
	}
	if p.IsMobile {
		classes = append(classes, "mobile")
	}
	return classes
}

// SaveStrategy names how the client should offer the final image for saving.
// Safari and iOS cannot trigger programmatic downloads of blob URLs reliably,
// so they get the open-in-new-tab flow with guidance.
func (p Profile) SaveStrategy() string {
	if p.IsIOS || p.IsSafari {
		return "newtab"
	}
	return "download"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
