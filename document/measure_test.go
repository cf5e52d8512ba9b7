package document

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	f := Font{Family: Helvetica, Size: 10} // 5pt per rune
	tests := []struct {
		name  string
		in    string
		width float64
		want  []string
	}{
		{"empty", "", 100, nil},
		{"blank", "   \n ", 100, nil},
		{"fits", "two words", 100, []string{"two words"}},
		{"breaks on spaces", "alpha beta gamma", 55, []string{"alpha beta", "gamma"}},
		{"keeps newlines", "a\nb", 100, []string{"a", "b"}},
		{"splits long word", "abcdefghij", 25, []string{"abcde", "fghij"}},
		{"narrower than a rune", "ab", 2, []string{"a", "b"}},
		{"invalid byte at word end", "aaaa\xe9", 20, []string{"aaaa", "\xe9"}},
		{"invalid bytes inside word", "a\xffb\xfec", 10, []string{"a\xff", "b\xfe", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(fixedMeasurer{}, tt.in, f, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %v) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"one", []string{"one"}},
		{"a; b;; c", []string{"a", "b", "c"}},
		{"first\n\n second \r\n;third", []string{"first", "second", "third"}},
		{" ; \n ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SplitTerms(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTerms(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#1a365d", Color{26, 54, 93}, true},
		{"2563EB", Color{37, 99, 235}, true},
		{"#fff", White, true},
		{"#12345", Color{}, false},
		{"#zzzzzz", Color{}, false},
		{"", Color{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHex(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseHex(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLighten(t *testing.T) {
	if got := Lighten(Black, 0.5); got != Gray(128) {
		t.Errorf("Lighten(black, 0.5) = %v", got)
	}
	if got := Lighten(Color{26, 54, 93}, 0); got != (Color{26, 54, 93}) {
		t.Errorf("Lighten(c, 0) = %v", got)
	}
	if got := BrandPaint(1).resolve(Color{1, 2, 3}); got != White {
		t.Errorf("BrandPaint(1) = %v", got)
	}
	if got := Solid(Black).resolve(White); got != Black {
		t.Errorf("Solid ignores the brand, got %v", got)
	}
}
