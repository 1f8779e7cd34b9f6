package form

import (
	"strings"
	"testing"
)

func TestIntroHTML(t *testing.T) {
	cases := []struct {
		name, intro, want string
		absent            []string
	}{
		{"empty", "", "", nil},
		{"blank", "  \n ", "", nil},
		{"plain", "Questions welcome.", "Questions welcome.", nil},
		{"keeps emphasis", "Reply <em>fast</em>.", "Reply <em>fast</em>.", nil},
		{"drops script", `Hi<script>alert(1)</script>`, "Hi", []string{"alert"}},
		{"drops handlers", `<p onmouseover="x()">Hi</p>`, "<p>Hi</p>", []string{"onmouseover"}},
		{"drops js urls", `<a href="javascript:alert(1)">x</a>`, "x", []string{"javascript"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fd := &FormDef{Intro: tc.intro}
			got := fd.IntroHTML()
			if got != tc.want {
				t.Errorf("IntroHTML = %q, want %q", got, tc.want)
			}
			for _, a := range tc.absent {
				if strings.Contains(got, a) {
					t.Errorf("IntroHTML kept %q: %q", a, got)
				}
			}
		})
	}
}

func TestIntroLinksGetNoFollow(t *testing.T) {
	fd := &FormDef{Intro: `See <a href="https://example.org/faq">the FAQ</a>.`}
	got := fd.IntroHTML()
	if !strings.Contains(got, `rel="nofollow`) || !strings.Contains(got, `target="_blank"`) {
		t.Fatalf("IntroHTML = %q", got)
	}
}

func TestIntroText(t *testing.T) {
	fd := &FormDef{Intro: "We answer <b>every</b>\n message &amp; reply.<script>x()</script>"}
	if got := fd.IntroText(); got != "We answer every message & reply." {
		t.Fatalf("IntroText = %q", got)
	}
	if got := (&FormDef{}).IntroText(); got != "" {
		t.Fatalf("empty IntroText = %q", got)
	}
}

func TestParseFormDefReadsIntro(t *testing.T) {
	fd, err := ParseFormDef([]byte("id: x\nintro: 'Say <em>hi</em>'\nfields:\n  - {name: a, label: A, type: text}\n"), "inline")
	if err != nil {
		t.Fatal(err)
	}
	if fd.IntroHTML() != "Say <em>hi</em>" {
		t.Fatalf("IntroHTML = %q", fd.IntroHTML())
	}
}
