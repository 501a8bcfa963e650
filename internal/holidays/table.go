package holidays

import (
	"time"

	"github.com/tartampluch/go-luach/internal/event"
	"github.com/tartampluch/go-luach/internal/hdate"
)

const (
	chul = event.ChulOnly
	il   = event.ILOnly
)

// fixedHoliday falls on the same Hebrew date every year.
type fixedHoliday struct {
	month  hdate.HMonth
	day    int
	desc   string
	flags  event.Flags
	emoji  string
	chmDay int
}

const (
	emojiRoshHashana = "🍏🍯"
	emojiSukkot      = "🌿🍋"
	emojiPesach      = "🫓"
	emojiShavuot     = "⛰️🌸"
	emojiPurim       = "🎭️📜"
	emojiChanukah    = "🕎"
	emojiIsrael      = "🇮🇱"
	emojiShabbat     = "🕍"
)

// keycaps are the digit emoji used for Chanukah candle counts.
var keycaps = [...]string{"0️⃣", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣"}

// fixedHolidays lists holidays with a fixed date. Entries whose observance
// differs between Israel and the Diaspora appear once per region.
var fixedHolidays = []fixedHoliday{
	{hdate.Tishrei, 2, "Rosh Hashana II", event.Chag | event.YomTovEnds, emojiRoshHashana, 0},
	{hdate.Tishrei, 9, "Erev Yom Kippur", event.Erev | event.LightCandles, "", 0},
	{hdate.Tishrei, 10, "Yom Kippur", event.Chag | event.MajorFast | event.YomTovEnds, "", 0},

	{hdate.Tishrei, 14, "Erev Sukkot", event.Erev | event.LightCandles, emojiSukkot, 0},

	{hdate.Tishrei, 15, "Sukkot I", chul | event.Chag | event.LightCandlesTzeis, emojiSukkot, 0},
	{hdate.Tishrei, 16, "Sukkot II", chul | event.Chag | event.YomTovEnds, emojiSukkot, 0},
	{hdate.Tishrei, 17, "Sukkot III (CH''M)", chul | event.CholHamoed, emojiSukkot, 1},
	{hdate.Tishrei, 18, "Sukkot IV (CH''M)", chul | event.CholHamoed, emojiSukkot, 2},
	{hdate.Tishrei, 19, "Sukkot V (CH''M)", chul | event.CholHamoed, emojiSukkot, 3},
	{hdate.Tishrei, 20, "Sukkot VI (CH''M)", chul | event.CholHamoed, emojiSukkot, 4},
	{hdate.Tishrei, 22, "Shmini Atzeret", chul | event.Chag | event.LightCandlesTzeis, "", 0},
	{hdate.Tishrei, 23, "Simchat Torah", chul | event.Chag | event.YomTovEnds, "", 0},

	{hdate.Tishrei, 15, "Sukkot I", il | event.Chag | event.YomTovEnds, emojiSukkot, 0},
	{hdate.Tishrei, 16, "Sukkot II (CH''M)", il | event.CholHamoed, emojiSukkot, 1},
	{hdate.Tishrei, 17, "Sukkot III (CH''M)", il | event.CholHamoed, emojiSukkot, 2},
	{hdate.Tishrei, 18, "Sukkot IV (CH''M)", il | event.CholHamoed, emojiSukkot, 3},
	{hdate.Tishrei, 19, "Sukkot V (CH''M)", il | event.CholHamoed, emojiSukkot, 4},
	{hdate.Tishrei, 20, "Sukkot VI (CH''M)", il | event.CholHamoed, emojiSukkot, 5},
	{hdate.Tishrei, 22, "Shmini Atzeret", il | event.Chag | event.YomTovEnds, "", 0},

	{hdate.Tishrei, 21, "Sukkot VII (Hoshana Raba)", event.LightCandles | event.CholHamoed, emojiSukkot, -1},

	{hdate.Kislev, 24, "Chanukah: 1 Candle", event.Erev | event.MinorHoliday | event.ChanukahCandles, emojiChanukah + keycaps[1], 0},

	{hdate.Shvat, 15, "Tu BiShvat", event.MinorHoliday, "🌳", 0},

	{hdate.Adar2, 13, "Erev Purim", event.Erev | event.MinorHoliday, emojiPurim, 0},
	{hdate.Adar2, 14, "Purim", event.MinorHoliday, emojiPurim, 0},
	{hdate.Adar2, 15, "Shushan Purim", event.MinorHoliday, emojiPurim, 0},

	{hdate.Nisan, 14, "Erev Pesach", event.Erev | event.LightCandles, emojiPesach + "🍷", 0},

	{hdate.Nisan, 15, "Pesach I", il | event.Chag | event.YomTovEnds, emojiPesach, 0},
	{hdate.Nisan, 16, "Pesach II (CH''M)", il | event.CholHamoed, emojiPesach, 1},
	{hdate.Nisan, 17, "Pesach III (CH''M)", il | event.CholHamoed, emojiPesach, 2},
	{hdate.Nisan, 18, "Pesach IV (CH''M)", il | event.CholHamoed, emojiPesach, 3},
	{hdate.Nisan, 19, "Pesach V (CH''M)", il | event.CholHamoed, emojiPesach, 4},
	{hdate.Nisan, 20, "Pesach VI (CH''M)", il | event.CholHamoed | event.LightCandles, emojiPesach, 5},
	{hdate.Nisan, 21, "Pesach VII", il | event.Chag | event.YomTovEnds, emojiPesach, 0},

	{hdate.Nisan, 15, "Pesach I", chul | event.Chag | event.LightCandlesTzeis, emojiPesach, 0},
	{hdate.Nisan, 16, "Pesach II", chul | event.Chag | event.YomTovEnds, emojiPesach, 0},
	{hdate.Nisan, 17, "Pesach III (CH''M)", chul | event.CholHamoed, emojiPesach, 1},
	{hdate.Nisan, 18, "Pesach IV (CH''M)", chul | event.CholHamoed, emojiPesach, 2},
	{hdate.Nisan, 19, "Pesach V (CH''M)", chul | event.CholHamoed, emojiPesach, 3},
	{hdate.Nisan, 20, "Pesach VI (CH''M)", chul | event.CholHamoed | event.LightCandles, emojiPesach, 4},
	{hdate.Nisan, 21, "Pesach VII", chul | event.Chag | event.LightCandlesTzeis, emojiPesach, 0},
	{hdate.Nisan, 22, "Pesach VIII", chul | event.Chag | event.YomTovEnds, emojiPesach, 0},

	{hdate.Iyyar, 14, "Pesach Sheni", event.MinorHoliday, "", 0},
	{hdate.Iyyar, 18, "Lag BaOmer", event.MinorHoliday, "🔥", 0},

	{hdate.Sivan, 5, "Erev Shavuot", event.Erev | event.LightCandles, emojiShavuot, 0},
	{hdate.Sivan, 6, "Shavuot", il | event.Chag | event.YomTovEnds, emojiShavuot, 0},
	{hdate.Sivan, 6, "Shavuot I", chul | event.Chag | event.LightCandlesTzeis, emojiShavuot, 0},
	{hdate.Sivan, 7, "Shavuot II", chul | event.Chag | event.YomTovEnds, emojiShavuot, 0},

	{hdate.Av, 15, "Tu B'Av", event.MinorHoliday, "❤️", 0},

	{hdate.Elul, 1, "Rosh Hashana LaBehemot", event.MinorHoliday, "🐑", 0},
	{hdate.Elul, 29, "Erev Rosh Hashana", event.Erev | event.LightCandles, emojiRoshHashana, 0},
}

// postponement moves a modern holiday off an inconvenient weekday.
type postponement int

const (
	noPostponement postponement = iota
	// satToSun moves Shabbat to Sunday.
	satToSun
	// friSatToSun moves Friday and Shabbat to Sunday.
	friSatToSun
	// friSatToThu moves Friday and Shabbat back to Thursday.
	friSatToThu
)

// modernHoliday is an Israeli civil observance established in firstYear.
type modernHoliday struct {
	firstYear int
	month     hdate.HMonth
	day       int
	desc      string
	chul      bool
	noEmoji   bool
	rule      postponement
}

var modernHolidays = []modernHoliday{
	{5727, hdate.Iyyar, 28, "Yom Yerushalayim", true, false, noPostponement},
	{5737, hdate.Kislev, 6, "Ben-Gurion Day", false, false, friSatToSun},
	{5750, hdate.Shvat, 30, "Family Day", false, false, noPostponement},
	{5758, hdate.Cheshvan, 12, "Yitzhak Rabin Memorial Day", false, false, friSatToThu},
	{5764, hdate.Iyyar, 10, "Herzl Day", false, false, satToSun},
	{5765, hdate.Tamuz, 29, "Jabotinsky Day", false, false, satToSun},
	{5769, hdate.Cheshvan, 29, "Sigd", true, true, noPostponement},
	{5777, hdate.Nisan, 10, "Yom HaAliyah", true, false, noPostponement},
	{5777, hdate.Cheshvan, 7, "Yom HaAliyah School Observance", false, false, noPostponement},
	{5774, hdate.Tevet, 21, "Hebrew Language Day", false, false, friSatToThu},
}

// apply returns the observed date of hd under the rule.
func (p postponement) apply(hd hdate.HDate) hdate.HDate {
	wd := hd.Weekday()
	switch p {
	case satToSun:
		if wd == time.Saturday {
			return hd.Next()
		}
	case friSatToSun:
		switch wd {
		case time.Friday:
			return hd.Add(2)
		case time.Saturday:
			return hd.Next()
		}
	case friSatToThu:
		switch wd {
		case time.Friday:
			return hd.Prev()
		case time.Saturday:
			return hd.Add(-2)
		}
	}
	return hd
}
