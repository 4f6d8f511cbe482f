// Package fields populates a bilingual profile record from the
// reconstructed text lines of a digitized identity document.
//
// Extraction is rule driven: every field owns an ordered list of
// (pattern, cleanup) rules, most reliable first, evaluated by a shared
// first-match-wins resolver. Patterns are bilingual aware: Amharic
// fields match the Ethiopic script range, English fields are cleaned
// down to Latin letters, digits and basic punctuation after matching.
//
// Extraction never fails on malformed input: every field independently
// degrades to the empty string. The only error condition is a document
// where no field at all could be extracted.
package fields

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/dawitk/faydagen/pkg/carddata"
)

// ErrNoFields is returned when extraction produced an entirely empty
// record, meaning the document text carried nothing recognizable.
var ErrNoFields = errors.New("no extractable fields found in document text")

// Extract runs the full rule set over the reconstructed lines and
// returns a completely populated record: every field is present and a
// string, defaulting to "".
func Extract(lines []carddata.TextLine) (*carddata.ProfileRecord, error) {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.Text)
	}
	text := sb.String()

	rec := &carddata.ProfileRecord{
		NameAm:        resolve(text, nameAmRules),
		NameEn:        resolve(text, nameEnRules),
		DateOfBirthAm: resolve(text, dobAmRules),
		DateOfBirthEn: resolve(text, dobEnRules),
		SexAm:         resolve(text, sexAmRules),
		SexEn:         resolve(text, sexEnRules),
		NationalityAm: resolve(text, nationalityAmRules),
		NationalityEn: resolve(text, nationalityEnRules),
		Phone:         resolve(text, phoneRules),
		ZoneAm:        resolve(text, zoneAmRules),
		ZoneEn:        resolve(text, zoneEnRules),
		WoredaAm:      resolve(text, woredaAmRules),
		WoredaEn:      resolve(text, woredaEnRules),
		FCN:           resolve(text, fcnRules),
		FIN:           resolve(text, finRules),
		SerialNumber:  resolve(text, serialRules),
	}

	// The FIN fallback pattern can latch onto the first three groups of
	// the FCN. Discard it when that happens.
	if rec.FIN != "" && rec.FCN != "" && strings.HasPrefix(strings.ReplaceAll(rec.FCN, " ", ""), strings.ReplaceAll(rec.FIN, " ", "")) {
		rec.FIN = ""
	}

	rec.RegionEn, rec.RegionAm = extractRegion(lines, text)

	if rec.IsEmpty() {
		return rec, ErrNoFields
	}
	return rec, nil
}

var dateLine = regexp.MustCompile(`[0-3]?\d/[01]?\d/(?:19|20)\d{2}`)

// extractRegion applies the three-tier address strategy in fixed
// priority order: positional (the region name is printed directly
// under the date-of-birth line), then the known-region alias table,
// then a generic "<words> Region" / "<words> ክልል" pattern.
func extractRegion(lines []carddata.TextLine, text string) (english, amharic string) {
	// Tier 1: line following the first date line.
	for i, l := range lines {
		if !dateLine.MatchString(l.Text) || i+1 >= len(lines) {
			continue
		}
		candidate := lines[i+1].Text
		if en, am := lookupRegion(candidate); en != "" {
			return en, am
		}
		break
	}

	// Tier 2: alias table anywhere in the text.
	if en, am := lookupRegion(text); en != "" {
		return en, am
	}

	// Tier 3: generic pattern per script.
	return resolve(text, regionEnGeneric), resolve(text, regionAmGeneric)
}

// CleanAmharic strips everything that is not Ethiopic script or
// whitespace and NFC-normalizes the result.
func CleanAmharic(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.Ethiopic, r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return collapseSpaces(b.String())
}

// CleanLatin strips everything that is not a Latin letter, digit,
// slash, hyphen or whitespace.
func CleanLatin(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '/' || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return collapseSpaces(b.String())
}

// NormalizeFCN canonicalizes the 16-digit primary identifier: all
// separators are stripped, the digit count validated, and the result
// re-grouped as four space-separated 4-digit blocks. Anything that is
// not exactly 16 digits normalizes to "".
func NormalizeFCN(s string) string {
	digits := digitsOnly(s)
	if len(digits) != 16 {
		return ""
	}
	return fmt.Sprintf("%s %s %s %s", digits[0:4], digits[4:8], digits[8:12], digits[12:16])
}

// NormalizeFIN canonicalizes the 12-digit secondary identifier into
// three space-separated 4-digit blocks.
func NormalizeFIN(s string) string {
	digits := digitsOnly(s)
	if len(digits) != 12 {
		return ""
	}
	return fmt.Sprintf("%s %s %s", digits[0:4], digits[4:8], digits[8:12])
}

func cleanDate(s string) string {
	return collapseSpaces(strings.TrimSpace(s))
}

func cleanPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
