package locale

import "strings"

var gematriyaValues = []struct {
	value  int
	letter string
}{
	{400, "ת"}, {300, "ש"}, {200, "ר"}, {100, "ק"},
	{90, "צ"}, {80, "פ"}, {70, "ע"}, {60, "ס"}, {50, "נ"},
	{40, "מ"}, {30, "ל"}, {20, "כ"}, {10, "י"},
	{9, "ט"}, {8, "ח"}, {7, "ז"}, {6, "ו"}, {5, "ה"},
	{4, "ד"}, {3, "ג"}, {2, "ב"}, {1, "א"},
}

// Gematriya writes n (1..999) in Hebrew numerals with geresh or gershayim,
// so 15 is ט״ו and 785 is תשפ״ה. Thousands are dropped as is customary
// for years.
func Gematriya(n int) string {
	n %= 1000
	if n <= 0 {
		return ""
	}

	var letters []string
	for n > 0 {
		// 15 and 16 avoid spelling a divine name.
		switch n {
		case 15:
			letters = append(letters, "ט", "ו")
			n = 0
			continue
		case 16:
			letters = append(letters, "ט", "ז")
			n = 0
			continue
		}
		for _, gv := range gematriyaValues {
			if gv.value <= n {
				letters = append(letters, gv.letter)
				n -= gv.value
				break
			}
		}
	}

	if len(letters) == 1 {
		return letters[0] + "׳"
	}
	last := len(letters) - 1
	return strings.Join(letters[:last], "") + "״" + letters[last]
}
