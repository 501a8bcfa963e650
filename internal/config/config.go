package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP server in response headers.
var UserAgent = "Go-Luach/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Luach"
	AppID             = "com.github.tartampluch.go-luach"
	EnvPrefix         = "LUACH"
	ConfigFileName    = "luach"
	ConfigFileType    = "yaml"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "luach.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion          = "version"
	FlagDebug            = "debug"
	FlagConfig           = "config"
	FlagCity             = "city"
	FlagIsrael           = "israel"
	FlagYear             = "year"
	FlagHebrewYear       = "hebrew-year"
	FlagMonth            = "month"
	FlagNumYears         = "years"
	FlagCandles          = "candles"
	FlagCandleMins       = "candle-mins"
	FlagHavdalahMins     = "havdalah-mins"
	FlagHavdalahDeg      = "havdalah-deg"
	FlagLocale           = "locale"
	FlagFormat           = "format"
	FlagOmer             = "omer"
	FlagSedrot           = "sedrot"
	FlagMolad            = "molad"
	FlagDafYomi          = "daf-yomi"
	FlagYomKippurKatan   = "yom-kippur-katan"
	FlagMevarchim        = "mevarchim"
	FlagHebrewDates      = "hebrew-dates"
	FlagNoHolidays       = "no-holidays"
	FlagNoRoshChodesh    = "no-rosh-chodesh"
	FlagNoModern         = "no-modern"
	FlagNoMinorFast      = "no-minor-fast"
	FlagNoSpecialShabbat = "no-special-shabbat"
	FlagServe            = "serve"
	FlagPort             = "port"

	FlagDescVersion          = "Show application version and exit"
	FlagDescDebug            = "Enable debug logging to stdout"
	FlagDescConfig           = "Path to a YAML configuration file"
	FlagDescCity             = "City used for candle-lighting and fast times"
	FlagDescIsrael           = "Use the Israeli holiday schedule"
	FlagDescYear             = "Year to generate (defaults to the current year)"
	FlagDescHebrewYear       = "Interpret --year as a Hebrew year"
	FlagDescMonth            = "Restrict output to a single month"
	FlagDescNumYears         = "Number of consecutive years to generate"
	FlagDescCandles          = "Add candle-lighting and Havdalah times (requires --city)"
	FlagDescCandleMins       = "Minutes before sunset for candle lighting"
	FlagDescHavdalahMins     = "Havdalah this many minutes after sunset (0 suppresses Havdalah)"
	FlagDescHavdalahDeg      = "Havdalah when the sun is this many degrees below the horizon (0 suppresses Havdalah)"
	FlagDescLocale           = "Output language (en, he)"
	FlagDescFormat           = "Output format: text, ics or json"
	FlagDescOmer             = "Add the daily count of the Omer"
	FlagDescSedrot           = "Add the weekly Torah portion on Shabbat"
	FlagDescMolad            = "Add the molad on Shabbat Mevarchim"
	FlagDescDafYomi          = "Add the daily Daf Yomi page"
	FlagDescYomKippurKatan   = "Add Yom Kippur Katan"
	FlagDescMevarchim        = "Add Shabbat Mevarchim"
	FlagDescHebrewDates      = "Add the Hebrew date to every day"
	FlagDescNoHolidays       = "Suppress all holidays"
	FlagDescNoRoshChodesh    = "Suppress Rosh Chodesh"
	FlagDescNoModern         = "Suppress modern Israeli holidays"
	FlagDescNoMinorFast      = "Suppress minor fasts"
	FlagDescNoSpecialShabbat = "Suppress special Shabbatot"
	FlagDescServe            = "Serve the calendar over HTTP instead of printing it"
	FlagDescPort             = "HTTP port used with --serve"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Settings Keys (viper)
// -----------------------------------------------------------------------------

const (
	KeyCity             = "calendar.city"
	KeyIsrael           = "calendar.israel"
	KeyYear             = "calendar.year"
	KeyHebrewYear       = "calendar.hebrew_year"
	KeyMonth            = "calendar.month"
	KeyNumYears         = "calendar.years"
	KeyLocale           = "calendar.locale"
	KeyCandles          = "candles.enabled"
	KeyCandleMins       = "candles.minutes"
	KeyHavdalahMins     = "candles.havdalah_minutes"
	KeyHavdalahDeg      = "candles.havdalah_degrees"
	KeyFastEndDeg       = "candles.fast_end_degrees"
	KeyOmer             = "extras.omer"
	KeySedrot           = "extras.sedrot"
	KeyMolad            = "extras.molad"
	KeyDafYomi          = "extras.daf_yomi"
	KeyYomKippurKatan   = "extras.yom_kippur_katan"
	KeyMevarchim        = "extras.shabbat_mevarchim"
	KeyHebrewDates      = "extras.hebrew_dates"
	KeyNoHolidays       = "suppress.holidays"
	KeyNoRoshChodesh    = "suppress.rosh_chodesh"
	KeyNoModern         = "suppress.modern"
	KeyNoMinorFast      = "suppress.minor_fast"
	KeyNoSpecialShabbat = "suppress.special_shabbat"
	KeyFormat           = "output.format"
	KeyServe            = "server.enabled"
	KeyPort             = "server.port"
	KeyRefreshCron      = "server.refresh_cron"
	KeyDebug            = "log.debug"
)

// SupportedLocales lists the output languages (ISO 639-1).
var SupportedLocales = []string{"en", "he"}

// -----------------------------------------------------------------------------
// Output Formats
// -----------------------------------------------------------------------------

const (
	FormatText = "text"
	FormatICS  = "ics"
	FormatJSON = "json"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort        = 18081
	DefaultLocale      = "en"
	DefaultFormat      = FormatText
	DefaultNumYears    = 1
	DefaultRefreshCron = "5 0 * * *" // Daily, shortly after midnight.

	// DefaultCandleLightingMins is the customary offset before sunset.
	DefaultCandleLightingMins = 18
	// JerusalemCandleLightingMins is Jerusalem's customary offset.
	JerusalemCandleLightingMins = 40
	// DefaultHavdalahDeg is the solar depression for three small stars.
	DefaultHavdalahDeg = 8.5
	// DefaultFastEndDeg is the solar depression ending minor fasts.
	DefaultFastEndDeg = 7.083
	// ChanukahTzeitDeg is the depression used for weekday Chanukah candles.
	ChanukahTzeitDeg = 7.083
	// ChanukahBeforeTzeitMins is how long before that point candles are lit.
	ChanukahBeforeTzeitMins = 13.5

	// YearCacheCapacity bounds the number of computed Hebrew years kept.
	YearCacheCapacity = 400

	// UIDNamespace seeds deterministic UUIDv5 event identifiers.
	UIDNamespace = "b6d7cc31-5ef6-4c43-9a26-2f0f0c3d7d0f"
	UIDDomain    = "goluach"
)

// -----------------------------------------------------------------------------
// Calendar Limits
// -----------------------------------------------------------------------------

const (
	MinHebrewYear    = 1
	MaxHebrewYear    = 32658
	MaxGregorianYear = 9999

	// FirstURLYear is the first Gregorian year that gets holiday links.
	FirstURLYear = 100

	// OmerDays is the length of the Omer count.
	OmerDays = 49
)

// -----------------------------------------------------------------------------
// Links
// -----------------------------------------------------------------------------

const (
	HolidayURLBase   = "https://www.hebcal.com/holidays/"
	ParshaURLBase    = "https://www.hebcal.com/sedrot/"
	URLIsraelSuffix  = "?i=on"
	URLDateSuffixFmt = "20060102"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Luach//Engine//EN"
	ICalCalName   = "Jewish Holidays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropURL         = "URL"
	PropTransp      = "TRANSP"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	TranspTransparent = "TRANSPARENT"

	// FormatUID expects the event UUID and the UID domain.
	FormatUID = "%s@%s"

	// StubVCalendar is served when a calendar has no events.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nX-WR-CALNAME:" + ICalCalName + "\r\nEND:VCALENDAR\r\n"

	DefaultICalRefresh = 12 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	DateFormatISO     = "2006-01-02"
	DateTimeFormatISO = time.RFC3339
	TimeFormat24      = "15:04"
	TimeFormat12      = "3:04"
	TextLineFormat    = "%s %s\n"
	ObservedSuffix    = " (observed)"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteICS           = "/holidays.ics"
	RouteJSON          = "/holidays.json"
	RouteHealth        = "/health"
	AddrSeparator      = ":"
	ChannelBufferSize  = 1
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderRetryAfter   = "Retry-After"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderServer       = "Server"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderLastModified = "Last-Modified"
	HeaderIfModSince   = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrJSONEncode       = "failed to encode JSON data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrConfigRead       = "failed to read configuration file"
	ErrConfigDecode     = "failed to decode configuration"
	ErrConfigInvalid    = "invalid configuration"
	ErrOptionsInvalid   = "invalid calendar options"
	ErrYearCompute      = "failed to compute holidays for year"
	ErrCityLookup       = "failed to resolve city"
	ErrCalendarBuild    = "failed to build calendar"
	ErrSchedulerInvalid = "invalid refresh schedule"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
	HTTPMsgOK           = "ok"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgGenSuccess     = "Calendar generation successful"
	MsgYearComputed   = "Holiday year computed"
	MsgYearCacheEvict = "Holiday year evicted from cache"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgRefreshFailed  = "Scheduled calendar refresh failed"
	MsgSchedulerStart = "Refresh scheduler started"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgConfigLoaded   = "Configuration loaded"
	MsgNoSunset       = "No sunset at location, skipping timed event"
	MsgExportDone     = "Events serialized"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyFormat    = "format"
	LogKeyYear      = "year"
	LogKeyCity      = "city"
	LogKeyIsrael    = "israel"
	LogKeyDate      = "date"
	LogKeyEvents    = "events"
	LogKeyDays      = "days"
	LogKeyStart     = "start"
	LogKeyEnd       = "end"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeySchedule  = "schedule"
	LogKeyStats     = "stats"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine   = "engine"
	CompHolidays = "holidays"
	CompServer   = "server"
	CompExport   = "export"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompConfig   = "config"
)
