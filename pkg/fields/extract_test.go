package fields

import (
	"errors"
	"strings"
	"testing"
	"unicode"

	"github.com/dawitk/faydagen/pkg/carddata"
)

func linesOf(texts ...string) []carddata.TextLine {
	lines := make([]carddata.TextLine, len(texts))
	for i, s := range texts {
		lines[i] = carddata.TextLine{Text: s, Y: float64(800 - i*20)}
	}
	return lines
}

func TestExtract_FCNAndNameScenario(t *testing.T) {
	rec, err := Extract(linesOf(
		"FCN: 1234 5678 9012 3456",
		"SURNAME Name",
	))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if rec.FCN != "1234 5678 9012 3456" {
		t.Errorf("FCN = %q, want %q", rec.FCN, "1234 5678 9012 3456")
	}
	if !strings.Contains(rec.NameEn, "SURNAME Name") {
		t.Errorf("NameEn = %q, want it to contain %q", rec.NameEn, "SURNAME Name")
	}
}

func TestExtract_EveryFieldPresent(t *testing.T) {
	inputs := [][]carddata.TextLine{
		nil,
		linesOf(""),
		linesOf("completely unrelated text", "nothing to see"),
		linesOf("FCN: 1111 2222 3333 4444"),
	}
	for _, lines := range inputs {
		rec, _ := Extract(lines)
		if rec == nil {
			t.Fatal("Extract returned nil record")
		}
		for key, value := range rec.Fields() {
			_ = value // every key must exist and be a string; absence would not compile
			if key == "" {
				t.Error("empty field key")
			}
		}
	}
}

func TestExtract_EmptyDocumentFails(t *testing.T) {
	rec, err := Extract(nil)
	if !errors.Is(err, ErrNoFields) {
		t.Errorf("expected ErrNoFields, got %v", err)
	}
	if rec == nil || !rec.IsEmpty() {
		t.Errorf("expected empty record, got %+v", rec)
	}
}

func TestExtract_BilingualDocument(t *testing.T) {
	rec, err := Extract(linesOf(
		"ሙሉ ስም አበበ ከበደ",
		"Name: Abebe Kebede",
		"የትውልድ ቀን 12/03/1985 ዓ.ም",
		"Date of Birth: 20/11/1992",
		"ፆታ ወንድ Sex: Male",
		"ዜግነት ኢትዮጵያዊ Nationality: Ethiopian",
		"Addis Ababa ክፍለ ከተማ ቦሌ Sub City: Bole",
		"Woreda: 03 ወረዳ 03",
		"+251 91 123 4567",
		"FCN: 6032-5711-0890-1234",
		"FIN 6032 5711 0894",
	))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	checks := map[string][2]string{
		"NameAm":        {rec.NameAm, "አበበ ከበደ"},
		"NameEn":        {rec.NameEn, "Abebe Kebede"},
		"DateOfBirthAm": {rec.DateOfBirthAm, "12/03/1985"},
		"DateOfBirthEn": {rec.DateOfBirthEn, "20/11/1992"},
		"SexAm":         {rec.SexAm, "ወንድ"},
		"SexEn":         {rec.SexEn, "Male"},
		"NationalityAm": {rec.NationalityAm, "ኢትዮጵያዊ"},
		"NationalityEn": {rec.NationalityEn, "Ethiopian"},
		"Phone":         {rec.Phone, "+251911234567"},
		"RegionEn":      {rec.RegionEn, "Addis Ababa"},
		"RegionAm":      {rec.RegionAm, "አዲስ አበባ"},
		"FCN":           {rec.FCN, "6032 5711 0890 1234"},
		"FIN":           {rec.FIN, "6032 5711 0894"},
	}
	for name, pair := range checks {
		if pair[0] != pair[1] {
			t.Errorf("%s = %q, want %q", name, pair[0], pair[1])
		}
	}
}

func TestExtract_ScriptCleanupInvariants(t *testing.T) {
	rec, _ := Extract(linesOf(
		"ሙሉ ስም አበበ123 ከበደ",
		"Name: Abebe† Kebede™",
	))

	for _, r := range rec.NameAm {
		if !unicode.Is(unicode.Ethiopic, r) && !unicode.IsSpace(r) {
			t.Errorf("NameAm contains non-Ethiopic rune %q in %q", r, rec.NameAm)
		}
	}
	for _, r := range rec.NameEn {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '/' || r == '-' || unicode.IsSpace(r)
		if !ok {
			t.Errorf("NameEn contains disallowed rune %q in %q", r, rec.NameEn)
		}
	}
}

func TestExtractRegion_TierOrder(t *testing.T) {
	// Tier 1: region name directly under the date line wins.
	lines := linesOf(
		"Date of Birth: 20/11/1992",
		"Oromia",
		"some mention of Tigray later",
	)
	en, am := extractRegion(lines, "Date of Birth: 20/11/1992\nOromia\nsome mention of Tigray later")
	if en != "Oromia" || am != "ኦሮሚያ" {
		t.Errorf("tier 1 got (%q, %q), want (Oromia, ኦሮሚያ)", en, am)
	}

	// Tier 2: no date line, alias anywhere in text.
	lines = linesOf("resident of Oromiya zone four")
	en, am = extractRegion(lines, "resident of Oromiya zone four")
	if en != "Oromia" {
		t.Errorf("tier 2 got %q, want Oromia", en)
	}

	// Tier 3: unknown region falls back to the generic pattern.
	lines = linesOf("Kaffa Region")
	en, _ = extractRegion(lines, "Kaffa Region")
	if en != "Kaffa" {
		t.Errorf("tier 3 got %q, want Kaffa", en)
	}
}

func TestNormalizeFCN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234 5678 9012 3456", "1234 5678 9012 3456"},
		{"1234-5678-9012-3456", "1234 5678 9012 3456"},
		{"1234567890123456", "1234 5678 9012 3456"},
		{"123456789012345", ""},   // 15 digits
		{"12345678901234567", ""}, // 17 digits
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeFCN(tt.in); got != tt.want {
			t.Errorf("NormalizeFCN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeFIN(t *testing.T) {
	if got := NormalizeFIN("6032-5711-0894"); got != "6032 5711 0894" {
		t.Errorf("NormalizeFIN = %q, want %q", got, "6032 5711 0894")
	}
	if got := NormalizeFIN("12345"); got != "" {
		t.Errorf("NormalizeFIN(short) = %q, want empty", got)
	}
}

func TestExtract_EthiopianDateNotMistakenForGregorian(t *testing.T) {
	rec, err := Extract(linesOf(
		"ሙሉ ስም አበበ ከበደ",
		"የትውልድ ቀን 12/03/1985 ዓ.ም",
	))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if rec.DateOfBirthAm != "12/03/1985" {
		t.Errorf("DateOfBirthAm = %q, want %q", rec.DateOfBirthAm, "12/03/1985")
	}
	// The era-marked date must not leak into the Gregorian field when
	// no labeled English date exists.
	if rec.DateOfBirthEn != "" {
		t.Errorf("DateOfBirthEn = %q, want empty", rec.DateOfBirthEn)
	}

	// An unlabeled date without the era marker still resolves.
	rec, err = Extract(linesOf("20/11/1992"))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if rec.DateOfBirthEn != "20/11/1992" {
		t.Errorf("DateOfBirthEn = %q, want %q", rec.DateOfBirthEn, "20/11/1992")
	}
}

func TestLookupRegion_PrefersLongerName(t *testing.T) {
	en, _ := lookupRegion("South West Ethiopia Peoples")
	if en != "South West Ethiopia" {
		t.Errorf("got %q, want South West Ethiopia", en)
	}
}
