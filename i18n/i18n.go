// Package i18n resolves display strings for the bilingual exhibit. Each
// simulation contributes its own key -> locale -> string table; the exhibit
// merges them with the shared chrome strings at startup.
package i18n

import (
	"log/slog"
)

// Table maps string keys to per-locale translations.
type Table map[string]map[string]string

// Locales supported by the exhibit, in toggle order.
var Locales = []string{"cs", "en"}

// Merge combines tables into one. Later tables win on key collisions.
func Merge(tables ...Table) Table {
	out := make(Table)
	for _, t := range tables {
		for k, v := range t {
			out[k] = v
		}
	}
	return out
}

// T resolves key in the given locale, falling back to English and finally
// to the key itself so a missing translation never blanks the display.
func (t Table) T(key, locale string) string {
	locs, ok := t[key]
	if !ok {
		slog.Warn("missing i18n key", "key", key)
		return key
	}
	if s, ok := locs[locale]; ok {
		return s
	}
	if s, ok := locs["en"]; ok {
		return s
	}
	return key
}

// Complete reports whether every key has every locale, listing gaps.
func (t Table) Complete(locales ...string) []string {
	var missing []string
	for k, locs := range t {
		for _, l := range locales {
			if _, ok := locs[l]; !ok {
				missing = append(missing, k+"/"+l)
			}
		}
	}
	return missing
}

// Chrome holds the shared exhibit strings outside any one simulation.
var Chrome = Table{
	"chrome.reset":      {"cs": "Znovu", "en": "Reset"},
	"chrome.snapshot":   {"cs": "Pohlednice", "en": "Postcard"},
	"chrome.language":   {"cs": "English", "en": "Česky"},
	"chrome.speed":      {"cs": "Tempo simulace", "en": "Simulation speed"},
	"chrome.palette":    {"cs": "Barvy", "en": "Colors"},
	"chrome.presets":    {"cs": "Režimy", "en": "Presets"},
	"chrome.sim.rd":     {"cs": "Vzory", "en": "Patterns"},
	"chrome.sim.osc":    {"cs": "Rytmus", "en": "Rhythm"},
	"chrome.sim.boids":  {"cs": "Hejno", "en": "Flock"},
	"chrome.sent":       {"cs": "Pohlednice odeslána!", "en": "Postcard sent!"},
	"chrome.sent.local": {"cs": "Pohlednice uložena.", "en": "Postcard saved."},
	"chrome.sent.fail":  {"cs": "Odeslání se nezdařilo.", "en": "Sending failed."},
}
