package query

import (
	"reflect"
	"testing"
)

func TestNormalize_Default(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	tests := []struct {
		in   string
		want []string
	}{
		{"Watch7", []string{"watch", "7"}},
		{"   ", []string{}},
		{"", []string{}},
		{"  iPhone   14  ", []string{"iphone", "14"}},
		{"iphone14pro", []string{"iphone", "14pro"}},
		{"USB-C cable", []string{"usb-c", "cable"}},
		{"7up", []string{"7up"}},
		{"A1", []string{"a", "1"}},
		{"tab\tnew\nline", []string{"tab", "new", "line"}},
	}
	for _, tc := range tests {
		got := n.Normalize(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_SplitDisabled(t *testing.T) {
	n := NewNormalizer(Options{})
	got := n.Normalize("Watch7")
	if !reflect.DeepEqual(got, []string{"watch7"}) {
		t.Errorf("Normalize = %q, want [watch7]", got)
	}
}

func TestNormalize_FoldAccents(t *testing.T) {
	n := NewNormalizer(Options{FoldAccents: true})
	got := n.Normalize("Café Crème")
	if !reflect.DeepEqual(got, []string{"cafe", "creme"}) {
		t.Errorf("Normalize = %q, want [cafe creme]", got)
	}

	plain := NewNormalizer(Options{})
	got = plain.Normalize("Café")
	if !reflect.DeepEqual(got, []string{"café"}) {
		t.Errorf("Normalize without folding = %q, want [café]", got)
	}
}

func TestNormalize_DropSymbolTokens(t *testing.T) {
	n := NewNormalizer(Options{DropSymbolTokens: true})
	got := n.Normalize("salt & pepper -")
	if !reflect.DeepEqual(got, []string{"salt", "pepper"}) {
		t.Errorf("Normalize = %q, want [salt pepper]", got)
	}
	if got := n.Normalize("& -"); len(got) != 0 {
		t.Errorf("Normalize(symbols) = %q, want empty", got)
	}
}

func TestNormalize_ZeroValue(t *testing.T) {
	var n Normalizer
	got := n.Normalize("Watch7 Band")
	if !reflect.DeepEqual(got, []string{"watch7", "band"}) {
		t.Errorf("Normalize = %q", got)
	}
}

func TestFoldAccents(t *testing.T) {
	tests := map[string]string{
		"Café Mug":  "Cafe Mug",
		"crème":     "creme",
		"naïve-ßig": "naive-ßig",
		"plain":     "plain",
		"":          "",
	}
	for in, want := range tests {
		if got := FoldAccents(in); got != want {
			t.Errorf("FoldAccents(%q) = %q, want %q", in, got, want)
		}
	}
}
