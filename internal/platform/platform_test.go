package platform

import (
	"reflect"
	"testing"
)

const (
	uaIPhoneSafari  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaAndroidChrome = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"
	uaMacChrome     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaMacSafari     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15"
	uaWindowsEdge   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		env  Environment
		want Profile
	}{
		{
			name: "iphone safari",
			env:  Environment{UserAgent: uaIPhoneSafari, Platform: "iPhone", HasMediaDevices: true, HasShareAPI: true},
			want: Profile{IsIOS: true, IsMobile: true, IsSafari: true, HasCamera: true, HasShare: true},
		},
		{
			name: "ipad masquerading as mac",
			env:  Environment{UserAgent: uaMacSafari, Platform: "MacIntel", MaxTouchPoints: 5, HasMediaDevices: true},
			want: Profile{IsIOS: true, IsMobile: true, IsSafari: true, HasCamera: true},
		},
		{
			name: "android chrome",
			env:  Environment{UserAgent: uaAndroidChrome, Platform: "Linux armv8l", HasMediaDevices: true, HasShareAPI: true},
			want: Profile{IsAndroid: true, IsMobile: true, HasCamera: true, HasShare: true},
		},
		{
			name: "mac chrome is not safari",
			env:  Environment{UserAgent: uaMacChrome, Platform: "MacIntel"},
			want: Profile{IsMac: true},
		},
		{
			name: "mac safari",
			env:  Environment{UserAgent: uaMacSafari, Platform: "MacIntel"},
			want: Profile{IsMac: true, IsSafari: true},
		},
		{
			name: "windows edge",
			env:  Environment{UserAgent: uaWindowsEdge, Platform: "Win32"},
			want: Profile{IsWindows: true},
		},
		{
			name: "empty environment",
			env:  Environment{},
			want: Profile{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.env); got != tc.want {
				t.Errorf("Detect() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestCSSClasses(t *testing.T) {
	p := Detect(Environment{UserAgent: uaIPhoneSafari, Platform: "iPhone"})
	want := []string{"ios", "mobile"}
	if got := p.CSSClasses(); !reflect.DeepEqual(got, want) {
		t.Errorf("CSSClasses() = %v, want %v", got, want)
	}
}

func TestSaveStrategy(t *testing.T) {
	ios := Detect(Environment{UserAgent: uaIPhoneSafari, Platform: "iPhone"})
	if ios.SaveStrategy() != "newtab" {
		t.Error("iOS should use the new-tab save flow")
	}
	win := Detect(Environment{UserAgent: uaWindowsEdge, Platform: "Win32"})
	if win.SaveStrategy() != "download" {
		t.Error("desktop browsers should use the download save flow")
	}
}
