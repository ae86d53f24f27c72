package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
		ok   bool
	}{
		{"en", language.English, true},
		{"fr", language.French, true},
		{"fr-CA", language.French, true},
		{" en-GB ", language.English, true},
		{"de", language.Tag{}, false},
		{"???", language.Tag{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseTag(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseTag(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveTag(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		cookie  string
		accept  string
		want    language.Tag
		persist bool
	}{
		{"default", "/", "", "", language.English, false},
		{"query wins", "/?lang=fr", "en", "en", language.French, true},
		{"cookie", "/", "fr", "en", language.French, false},
		{"accept-language", "/", "", "fr-CA,fr;q=0.9", language.French, false},
		{"unsupported accept falls back", "/", "", "de-DE", language.English, false},
		{"bad query ignored", "/?lang=xx", "", "", language.English, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			got, persist := ResolveTag(r, Default())
			if got != tt.want || persist != tt.persist {
				t.Fatalf("ResolveTag = %v, %v; want %v, %v", got, persist, tt.want, tt.persist)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	en := Printer(language.English)
	if got := en.Sprintf(KeyWon, 42, 5); got != "Congratulations! You found the number 42 in 5 attempts." {
		t.Fatalf("en won = %q", got)
	}
	fr := Printer(language.French)
	if got := fr.Sprintf(KeyLost, 10, 7); got != "Dommage ! Vous avez utilisé vos 10 tentatives. Le nombre était 7." {
		t.Fatalf("fr lost = %q", got)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetLanguageCookie(w, language.French)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "fr" {
		t.Fatalf("cookies = %+v", cookies)
	}
}

func TestSupportedNames(t *testing.T) {
	want := map[language.Tag]string{
		language.English: "English",
		language.French:  "français",
	}
	tags := Supported()
	if len(tags) != len(want) {
		t.Fatalf("supported = %v", tags)
	}
	for _, tag := range tags {
		if got := Name(tag); got != want[tag] {
			t.Errorf("Name(%v) = %q, want %q", tag, got, want[tag])
		}
	}
}
