package i18n

import "testing"

func TestTFallsBack(t *testing.T) {
	table := Table{
		"full":    {"cs": "Ahoj", "en": "Hello"},
		"en.only": {"en": "English only"},
		"neither": {"de": "Hallo"},
	}

	tests := []struct {
		name   string
		key    string
		locale string
		want   string
	}{
		{"exact hit", "full", "cs", "Ahoj"},
		{"other locale", "full", "en", "Hello"},
		{"english fallback", "en.only", "cs", "English only"},
		{"no usable locale", "neither", "cs", "neither"},
		{"missing key", "nope", "cs", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.T(tt.key, tt.locale); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.key, tt.locale, got, tt.want)
			}
		})
	}
}

func TestMergeLaterTablesWin(t *testing.T) {
	a := Table{"k": {"en": "first"}, "only.a": {"en": "a"}}
	b := Table{"k": {"en": "second"}}

	m := Merge(a, b)
	if got := m.T("k", "en"); got != "second" {
		t.Errorf("merged value = %q, want %q", got, "second")
	}
	if got := m.T("only.a", "en"); got != "a" {
		t.Errorf("non-colliding key lost: %q", got)
	}
}

func TestComplete(t *testing.T) {
	table := Table{
		"ok":      {"cs": "x", "en": "y"},
		"partial": {"en": "y"},
	}
	missing := table.Complete("cs", "en")
	if len(missing) != 1 || missing[0] != "partial/cs" {
		t.Errorf("missing = %v, want [partial/cs]", missing)
	}
}

func TestChromeCoversBothLocales(t *testing.T) {
	if missing := Chrome.Complete(Locales...); len(missing) != 0 {
		t.Errorf("chrome strings incomplete: %v", missing)
	}
}
