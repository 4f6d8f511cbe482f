package fields

import "strings"

// adminRegion is one known Ethiopian administrative region with its
// canonical names in both scripts and the spelling variants that show
// up on printed documents.
type adminRegion struct {
	English   string
	Amharic   string
	AliasesEn []string
	AliasesAm []string
}

// adminRegions covers the regional states and the two chartered cities.
// Alias matching is case-insensitive for the Latin entries.
var adminRegions = []adminRegion{
	{English: "Addis Ababa", Amharic: "አዲስ አበባ", AliasesEn: []string{"Addis Abeba", "A.A"}},
	{English: "Afar", Amharic: "አፋር"},
	{English: "Amhara", Amharic: "አማራ", AliasesEn: []string{"Amara"}},
	{English: "Benishangul-Gumuz", Amharic: "ቤንሻንጉል ጉሙዝ", AliasesEn: []string{"Benishangul Gumuz", "Benishangul"}},
	{English: "Central Ethiopia", Amharic: "መካከለኛው ኢትዮጵያ"},
	{English: "Dire Dawa", Amharic: "ድሬዳዋ", AliasesEn: []string{"Diredawa", "Dire-Dawa"}, AliasesAm: []string{"ድሬ ዳዋ"}},
	{English: "Gambela", Amharic: "ጋምቤላ", AliasesEn: []string{"Gambella"}},
	{English: "Harari", Amharic: "ሐረሪ", AliasesEn: []string{"Harar", "Harer"}, AliasesAm: []string{"ሀረሪ"}},
	{English: "Oromia", Amharic: "ኦሮሚያ", AliasesEn: []string{"Oromiya", "Oromiyaa"}},
	{English: "Sidama", Amharic: "ሲዳማ"},
	{English: "Somali", Amharic: "ሶማሌ", AliasesEn: []string{"Somalia Region", "Somali Region"}},
	{English: "South Ethiopia", Amharic: "ደቡብ ኢትዮጵያ", AliasesEn: []string{"SNNPR", "Southern Nations"}},
	{English: "South West Ethiopia", Amharic: "ደቡብ ምዕራብ ኢትዮጵያ", AliasesEn: []string{"Southwest Ethiopia"}},
	{English: "Tigray", Amharic: "ትግራይ", AliasesEn: []string{"Tigrai"}},
}

// lookupRegion scans arbitrary text for any known region name or alias
// in either script and returns the canonical bilingual pair. Longer
// names are preferred so "South West Ethiopia" is not shadowed by
// "South Ethiopia".
func lookupRegion(text string) (english, amharic string) {
	lower := strings.ToLower(text)
	bestLen := 0
	for _, r := range adminRegions {
		for _, cand := range append([]string{r.English}, r.AliasesEn...) {
			if len(cand) > bestLen && strings.Contains(lower, strings.ToLower(cand)) {
				english, amharic = r.English, r.Amharic
				bestLen = len(cand)
			}
		}
		for _, cand := range append([]string{r.Amharic}, r.AliasesAm...) {
			if len(cand) > bestLen && strings.Contains(text, cand) {
				english, amharic = r.English, r.Amharic
				bestLen = len(cand)
			}
		}
	}
	return english, amharic
}
