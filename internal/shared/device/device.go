package device

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

const (
	desktopWidth = 800
	tabletWidth  = 600
	smartWidth   = 320
	basicWidth   = 176
)

// Tokens only sent by WAP/J2ME era handsets.
var featurePhoneTokens = []string{"MIDP", "CLDC", "UP.Browser", "UP.Link", "WAP", "Opera Mini", "NetFront"}

// Profile describes what the requesting client can display.
type Profile struct {
	Class         Class  `json:"class"`
	MaxImageWidth int    `json:"max_image_width"`
	Platform      string `json:"platform,omitempty"`
	OS            string `json:"os,omitempty"`
	Browser       string `json:"browser,omitempty"`
	UserAgent     string `json:"-"`
}

// Basic reports whether the client should get the reduced markup.
func (p Profile) Basic() bool {
	return p.Class == ClassBasic
}

// Detect builds a profile from a User-Agent header.
func Detect(userAgent string) Profile {
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()

	p := Profile{
		UserAgent: userAgent,
		Platform:  ua.Platform(),
		OS:        ua.OS(),
		Browser:   browser,
	}

	switch {
	case ua.Bot():
		p.Class, p.MaxImageWidth = ClassDesktop, desktopWidth
	case isFeaturePhone(userAgent):
		p.Class, p.MaxImageWidth = ClassBasic, basicWidth
	case ua.Platform() == "iPad":
		p.Class, p.MaxImageWidth = ClassSmart, tabletWidth
	case ua.Mobile() && ua.Mozilla() != "":
		p.Class, p.MaxImageWidth = ClassSmart, smartWidth
	case ua.Mobile():
		p.Class, p.MaxImageWidth = ClassBasic, basicWidth
	case userAgent == "":
		p.Class, p.MaxImageWidth = ClassBasic, basicWidth
	default:
		p.Class, p.MaxImageWidth = ClassDesktop, desktopWidth
	}

	return p
}

// ForClass returns a synthetic profile, used for explicit overrides.
func ForClass(class Class) Profile {
	switch class {
	case ClassBasic:
		return Profile{Class: ClassBasic, MaxImageWidth: basicWidth}
	case ClassSmart:
		return Profile{Class: ClassSmart, MaxImageWidth: smartWidth}
	default:
		return Profile{Class: ClassDesktop, MaxImageWidth: desktopWidth}
	}
}

func isFeaturePhone(userAgent string) bool {
	for _, token := range featurePhoneTokens {
		if strings.Contains(userAgent, token) {
			return true
		}
	}
	return false
}

type contextKey struct{}

// WithProfile stores p in ctx.
func WithProfile(ctx context.Context, p Profile) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the profile stored by Middleware, falling back to a
// desktop profile.
func FromContext(ctx context.Context) Profile {
	if p, ok := ctx.Value(contextKey{}).(Profile); ok {
		return p
	}
	return ForClass(ClassDesktop)
}

// Middleware detects the device profile once per request. A ?device= query
// parameter forces a class.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile := Detect(r.UserAgent())
		if forced, err := ParseClass(r.URL.Query().Get("device")); err == nil {
			profile = ForClass(forced)
			profile.UserAgent = r.UserAgent()
		}
		next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), profile)))
	})
}
