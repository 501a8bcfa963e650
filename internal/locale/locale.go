// Package locale translates event titles and formats clock times. Every
// call takes the locale explicitly; there is no process-wide active
// language.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-luach/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translation keys for templated messages.
const (
	KeyOmerDay    = "omer_day"
	KeyMolad      = "molad"
	KeyHebrewDate = "hebrew_date"
	KeyDafYomi    = "daf_yomi"
	KeyMevarchim  = "mevarchim"
	KeyTimeAM     = "time_am"
	KeyTimePM     = "time_pm"
)

// hour12Countries use a 12-hour clock in English output.
var hour12Countries = map[string]bool{
	"US": true, "CA": true, "BR": true, "AU": true, "NZ": true, "DO": true,
	"PR": true, "GR": true, "IN": true, "KR": true, "NP": true, "ZA": true,
}

// Translator resolves message IDs against the embedded locale files.
type Translator struct {
	bundle     *i18n.Bundle
	matcher    language.Matcher
	locales    []string
	localizers map[string]*i18n.Localizer
}

var (
	defaultOnce sync.Once
	defaultTr   *Translator
)

// Default returns a process-wide Translator over the embedded locales.
func Default() *Translator {
	defaultOnce.Do(func() {
		tr, err := New()
		if err != nil {
			slog.Error(config.ErrLocalesAccess,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyError, err,
			)
			tr = &Translator{
				bundle:     i18n.NewBundle(language.English),
				matcher:    language.NewMatcher([]language.Tag{language.English}),
				locales:    []string{config.DefaultLocale},
				localizers: map[string]*i18n.Localizer{},
			}
		}
		defaultTr = tr
	})
	return defaultTr
}

// New loads every active.<lang>.json file from the embedded locales.
func New() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		detected = append(detected, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	// English first so the matcher falls back to it.
	slices.SortFunc(detected, func(a, b string) int {
		switch {
		case a == config.DefaultLocale:
			return -1
		case b == config.DefaultLocale:
			return 1
		}
		return strings.Compare(a, b)
	})

	tags := make([]language.Tag, 0, len(detected))
	localizers := make(map[string]*i18n.Localizer, len(detected))
	for _, code := range detected {
		tags = append(tags, language.Make(code))
		localizers[code] = i18n.NewLocalizer(bundle, code)
	}

	return &Translator{
		bundle:     bundle,
		matcher:    language.NewMatcher(tags),
		locales:    detected,
		localizers: localizers,
	}, nil
}

// Locales returns the loaded language codes, English first.
func (t *Translator) Locales() []string {
	return slices.Clone(t.locales)
}

// Normalize maps a BCP 47 tag ("he-IL", "en_US", "") to a loaded locale.
func (t *Translator) Normalize(locale string) string {
	if locale == "" || len(t.locales) == 0 {
		return config.DefaultLocale
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return config.DefaultLocale
	}
	_, idx, conf := t.matcher.Match(tag)
	if conf == language.No {
		return config.DefaultLocale
	}
	return t.locales[idx]
}

// Lookup translates key into locale. Missing keys fall back to English and
// then to the key itself, which is how English holiday titles render.
func (t *Translator) Lookup(key, locale string) string {
	return t.localize(key, locale, nil)
}

// Format translates a templated message.
func (t *Translator) Format(key, locale string, data map[string]any) string {
	return t.localize(key, locale, data)
}

// Has reports whether locale has its own translation of key.
func (t *Translator) Has(key, locale string) bool {
	loc, ok := t.localizers[t.Normalize(locale)]
	if !ok {
		return false
	}
	_, _, err := loc.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: key})
	return err == nil
}

func (t *Translator) localize(key, locale string, data map[string]any) string {
	loc, ok := t.localizers[t.Normalize(locale)]
	if !ok {
		return key
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if msg != "" {
		return msg
	}
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyLang, locale,
		)
	}
	return key
}

// Uses12Hour reports whether times render on a 12-hour clock for locale in
// countryCode.
func Uses12Hour(locale, countryCode string) bool {
	return locale != "he" && hour12Countries[strings.ToUpper(countryCode)]
}

// FormatTime renders the wall-clock time of tm, "7:12pm" in 12-hour
// countries and "19:12" elsewhere.
func (t *Translator) FormatTime(tm time.Time, locale, countryCode string) string {
	locale = t.Normalize(locale)
	if !Uses12Hour(locale, countryCode) {
		return tm.Format(config.TimeFormat24)
	}
	suffix := t.Lookup(KeyTimePM, locale)
	if tm.Hour() < 12 {
		suffix = t.Lookup(KeyTimeAM, locale)
	}
	return tm.Format(config.TimeFormat12) + suffix
}

// Ordinal renders n as an English ordinal ("1st", "22nd", "113th").
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
