package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings holds the resolved application configuration. Values come from,
// in increasing precedence: defaults, the YAML config file, LUACH_*
// environment variables and command-line flags.
type Settings struct {
	Calendar CalendarSettings `mapstructure:"calendar"`
	Candles  CandleSettings   `mapstructure:"candles"`
	Extras   ExtraSettings    `mapstructure:"extras"`
	Suppress SuppressSettings `mapstructure:"suppress"`
	Output   OutputSettings   `mapstructure:"output"`
	Server   ServerSettings   `mapstructure:"server"`
	Log      LogSettings      `mapstructure:"log"`
}

// CalendarSettings selects the range, region and language of the calendar.
type CalendarSettings struct {
	City       string `mapstructure:"city"`
	Israel     bool   `mapstructure:"israel"`
	Year       int    `mapstructure:"year" validate:"min=0,max=32658"`
	HebrewYear bool   `mapstructure:"hebrew_year"`
	Month      int    `mapstructure:"month" validate:"min=0,max=13"`
	Years      int    `mapstructure:"years" validate:"min=1,max=100"`
	Locale     string `mapstructure:"locale" validate:"oneof=en he"`
}

// CandleSettings controls candle-lighting, Havdalah and fast times.
type CandleSettings struct {
	Enabled         bool     `mapstructure:"enabled"`
	Minutes         int      `mapstructure:"minutes" validate:"min=0,max=120"`
	HavdalahMinutes *int     `mapstructure:"havdalah_minutes" validate:"omitempty,min=0,max=180,excluded_with=HavdalahDegrees"`
	HavdalahDegrees *float64 `mapstructure:"havdalah_degrees" validate:"omitempty,min=0,max=18,excluded_with=HavdalahMinutes"`
	FastEndDegrees  float64  `mapstructure:"fast_end_degrees" validate:"min=0,max=18"`
	UseElevation    bool     `mapstructure:"use_elevation"`
}

// ExtraSettings turns on optional event families.
type ExtraSettings struct {
	Omer             bool `mapstructure:"omer"`
	Sedrot           bool `mapstructure:"sedrot"`
	Molad            bool `mapstructure:"molad"`
	DafYomi          bool `mapstructure:"daf_yomi"`
	YomKippurKatan   bool `mapstructure:"yom_kippur_katan"`
	ShabbatMevarchim bool `mapstructure:"shabbat_mevarchim"`
	HebrewDates      bool `mapstructure:"hebrew_dates"`
}

// SuppressSettings turns off default event families.
type SuppressSettings struct {
	Holidays       bool `mapstructure:"holidays"`
	RoshChodesh    bool `mapstructure:"rosh_chodesh"`
	Modern         bool `mapstructure:"modern"`
	MinorFast      bool `mapstructure:"minor_fast"`
	SpecialShabbat bool `mapstructure:"special_shabbat"`
}

// OutputSettings selects the serialization of the event list.
type OutputSettings struct {
	Format string `mapstructure:"format" validate:"oneof=text ics json"`
}

// ServerSettings configures the HTTP feed.
type ServerSettings struct {
	Enabled        bool   `mapstructure:"enabled"`
	Port           int    `mapstructure:"port" validate:"gt=0,lt=65536"`
	RefreshCron    string `mapstructure:"refresh_cron" validate:"required"`
	CandleReminder string `mapstructure:"candle_reminder"`
}

// LogSettings configures logging verbosity.
type LogSettings struct {
	Debug bool `mapstructure:"debug"`
}

// flagBindings maps command-line flags to their settings keys.
var flagBindings = map[string]string{
	FlagDebug:            KeyDebug,
	FlagCity:             KeyCity,
	FlagIsrael:           KeyIsrael,
	FlagYear:             KeyYear,
	FlagHebrewYear:       KeyHebrewYear,
	FlagMonth:            KeyMonth,
	FlagNumYears:         KeyNumYears,
	FlagCandles:          KeyCandles,
	FlagCandleMins:       KeyCandleMins,
	FlagLocale:           KeyLocale,
	FlagFormat:           KeyFormat,
	FlagOmer:             KeyOmer,
	FlagSedrot:           KeySedrot,
	FlagMolad:            KeyMolad,
	FlagDafYomi:          KeyDafYomi,
	FlagYomKippurKatan:   KeyYomKippurKatan,
	FlagMevarchim:        KeyMevarchim,
	FlagHebrewDates:      KeyHebrewDates,
	FlagNoHolidays:       KeyNoHolidays,
	FlagNoRoshChodesh:    KeyNoRoshChodesh,
	FlagNoModern:         KeyNoModern,
	FlagNoMinorFast:      KeyNoMinorFast,
	FlagNoSpecialShabbat: KeyNoSpecialShabbat,
	FlagServe:            KeyServe,
	FlagPort:             KeyPort,
}

// RegisterFlags declares every command-line flag understood by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Bool(FlagVersion, false, FlagDescVersion)
	fs.Bool(FlagDebug, false, FlagDescDebug)
	fs.String(FlagConfig, "", FlagDescConfig)
	fs.String(FlagCity, "", FlagDescCity)
	fs.Bool(FlagIsrael, false, FlagDescIsrael)
	fs.Int(FlagYear, 0, FlagDescYear)
	fs.Bool(FlagHebrewYear, false, FlagDescHebrewYear)
	fs.Int(FlagMonth, 0, FlagDescMonth)
	fs.Int(FlagNumYears, DefaultNumYears, FlagDescNumYears)
	fs.BoolP(FlagCandles, "c", false, FlagDescCandles)
	fs.Int(FlagCandleMins, DefaultCandleLightingMins, FlagDescCandleMins)
	fs.Int(FlagHavdalahMins, 0, FlagDescHavdalahMins)
	fs.Float64(FlagHavdalahDeg, DefaultHavdalahDeg, FlagDescHavdalahDeg)
	fs.String(FlagLocale, DefaultLocale, FlagDescLocale)
	fs.StringP(FlagFormat, "f", DefaultFormat, FlagDescFormat)
	fs.BoolP(FlagOmer, "o", false, FlagDescOmer)
	fs.BoolP(FlagSedrot, "s", false, FlagDescSedrot)
	fs.Bool(FlagMolad, false, FlagDescMolad)
	fs.BoolP(FlagDafYomi, "F", false, FlagDescDafYomi)
	fs.Bool(FlagYomKippurKatan, false, FlagDescYomKippurKatan)
	fs.Bool(FlagMevarchim, false, FlagDescMevarchim)
	fs.Bool(FlagHebrewDates, false, FlagDescHebrewDates)
	fs.Bool(FlagNoHolidays, false, FlagDescNoHolidays)
	fs.Bool(FlagNoRoshChodesh, false, FlagDescNoRoshChodesh)
	fs.Bool(FlagNoModern, false, FlagDescNoModern)
	fs.Bool(FlagNoMinorFast, false, FlagDescNoMinorFast)
	fs.Bool(FlagNoSpecialShabbat, false, FlagDescNoSpecialShabbat)
	fs.Bool(FlagServe, false, FlagDescServe)
	fs.Int(FlagPort, DefaultPort, FlagDescPort)
}

// Load resolves Settings from defaults, an optional config file, the
// environment and fs. fs must have been prepared with RegisterFlags and
// parsed. A missing config file is not an error unless it was named
// explicitly with --config.
func Load(fs *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys without defaults are only visible to Unmarshal once bound.
	for _, key := range []string{KeyHavdalahMins, KeyHavdalahDeg} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrConfigDecode, err)
		}
	}

	for flag, key := range flagBindings {
		if f := fs.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrConfigDecode, err)
			}
		}
	}

	if err := readConfigFile(v, fs); err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}

	// Havdalah options distinguish "unset" from zero, so flags only count
	// when given explicitly.
	if fs.Changed(FlagHavdalahMins) {
		mins, _ := fs.GetInt(FlagHavdalahMins)
		s.Candles.HavdalahMinutes = &mins
	}
	if fs.Changed(FlagHavdalahDeg) {
		deg, _ := fs.GetFloat64(FlagHavdalahDeg)
		s.Candles.HavdalahDegrees = &deg
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	slog.Debug(MsgConfigLoaded,
		LogKeyComponent, CompConfig,
		LogKeyFile, v.ConfigFileUsed(),
	)
	return &s, nil
}

// Validate checks field ranges and mutually exclusive options.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("%s: %w", ErrConfigInvalid, err)
	}
	if s.Calendar.Year != 0 && !s.Calendar.HebrewYear && s.Calendar.Year > MaxGregorianYear {
		return fmt.Errorf("%s: gregorian year %d out of range", ErrConfigInvalid, s.Calendar.Year)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyNumYears, DefaultNumYears)
	v.SetDefault(KeyLocale, DefaultLocale)
	v.SetDefault(KeyCandleMins, DefaultCandleLightingMins)
	v.SetDefault(KeyFastEndDeg, DefaultFastEndDeg)
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyRefreshCron, DefaultRefreshCron)
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) error {
	explicit, _ := fs.GetString(FlagConfig)
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, ConfigFileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%s: %w", ErrConfigRead, err)
	}
	return nil
}
