package fields

import (
	"regexp"
	"strings"
)

// Rule is one extraction attempt for a field: a pattern, the capture
// group carrying the value, and a cleanup applied to the raw match.
// Each field owns an ordered rule list, most reliable pattern first,
// and the first rule that matches wins.
type Rule struct {
	Pattern *regexp.Regexp
	Group   int
	Clean   func(string) string
}

// resolve runs an ordered rule list over the full document text and
// returns the first non-empty cleaned match.
func resolve(text string, rules []Rule) string {
	for _, r := range rules {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil || len(m) <= r.Group {
			continue
		}
		value := m[r.Group]
		if r.Clean != nil {
			value = r.Clean(value)
		}
		value = strings.TrimSpace(value)
		if value != "" {
			return value
		}
	}
	return ""
}

var (
	fcnRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)FCN\s*[:：]?\s*(\d[\d \-]{14,40})`), Group: 1, Clean: NormalizeFCN},
		{Pattern: regexp.MustCompile(`(?i)(?:ፋይዳ|Fayda)[^\n0-9]*(\d[\d \-]{14,40})`), Group: 1, Clean: NormalizeFCN},
		{Pattern: regexp.MustCompile(`\b(\d{4}[ \-]\d{4}[ \-]\d{4}[ \-]\d{4})\b`), Group: 1, Clean: NormalizeFCN},
	}

	finRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)FIN\s*[:：]?\s*(\d[\d \-]{10,24})`), Group: 1, Clean: NormalizeFIN},
		{Pattern: regexp.MustCompile(`\b(\d{4}[ \-]\d{4}[ \-]\d{4})\b(?:[^\d]|$)`), Group: 1, Clean: NormalizeFIN},
	}

	serialRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)Serial(?:\s*No\.?)?\s*[:：#]?\s*([A-Z0-9][A-Z0-9\-]{4,})`), Group: 1},
		{Pattern: regexp.MustCompile(`\b(SN[0-9]{6,12})\b`), Group: 1},
	}

	nameEnRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)(?:Full\s+)?Name\s*[:：]\s*([A-Za-z][A-Za-z .'\-]{2,})`), Group: 1, Clean: CleanLatin},
		// The English name is printed on the line directly under the FCN.
		{Pattern: regexp.MustCompile(`(?i)FCN[^\n]*\n([A-Za-z][^\n]{2,})`), Group: 1, Clean: CleanLatin},
		{Pattern: regexp.MustCompile(`(?m)^([A-Z][A-Za-z'\-]+(?: [A-Z][A-Za-z'\-]+){1,3})$`), Group: 1, Clean: CleanLatin},
	}

	nameAmRules = []Rule{
		{Pattern: regexp.MustCompile(`(?:ሙሉ\s*ስም|ስም)\s*[:：]?\s*(\p{Ethiopic}[\p{Ethiopic} ]+)`), Group: 1, Clean: CleanAmharic},
		{Pattern: regexp.MustCompile(`(?m)^(\p{Ethiopic}{2,}(?: \p{Ethiopic}+)+)$`), Group: 1, Clean: CleanAmharic},
	}

	dobEnRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)Date\s+of\s+Birth\s*[:：]?\s*([0-3]?\d[/\-][01]?\d[/\-](?:19|20)\d{2})`), Group: 1, Clean: CleanLatin},
		// An unlabeled date only counts as Gregorian when it is not
		// followed by the ዓ.ም era marker, even across spaces.
		{Pattern: regexp.MustCompile(`(?m)\b([0-3]?\d/[01]?\d/(?:19|20)\d{2})\s*(?:$|[^ዓ\s])`), Group: 1, Clean: CleanLatin},
	}

	dobAmRules = []Rule{
		{Pattern: regexp.MustCompile(`(?:የትውልድ\s*ቀን|ትውልድ)\s*[:：]?\s*([0-3]?\d[/\-][01]?\d[/\-](?:19|20)\d{2})`), Group: 1, Clean: cleanDate},
		// Ethiopian-calendar dates are suffixed with the ዓ.ም era marker.
		{Pattern: regexp.MustCompile(`([0-3]?\d/[01]?\d/(?:19|20)\d{2})\s*ዓ[./]?ም`), Group: 1, Clean: cleanDate},
	}

	sexEnRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)Sex\s*[:：]?\s*(Male|Female)\b`), Group: 1, Clean: CleanLatin},
		{Pattern: regexp.MustCompile(`(?i)\b(Male|Female)\b`), Group: 1, Clean: CleanLatin},
	}

	sexAmRules = []Rule{
		{Pattern: regexp.MustCompile(`ፆታ\s*[:：]?\s*(ወንድ|ሴት)`), Group: 1, Clean: CleanAmharic},
		{Pattern: regexp.MustCompile(`(ወንድ|ሴት)`), Group: 1, Clean: CleanAmharic},
	}

	nationalityEnRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)Nationality\s*[:：]?\s*([A-Za-z]+)`), Group: 1, Clean: CleanLatin},
		{Pattern: regexp.MustCompile(`(?i)\b(Ethiopian)\b`), Group: 1, Clean: CleanLatin},
	}

	nationalityAmRules = []Rule{
		{Pattern: regexp.MustCompile(`ዜግነት\s*[:：]?\s*(\p{Ethiopic}+)`), Group: 1, Clean: CleanAmharic},
		{Pattern: regexp.MustCompile(`(ኢትዮጵያዊት|ኢትዮጵያዊ)`), Group: 1, Clean: CleanAmharic},
	}

	phoneRules = []Rule{
		{Pattern: regexp.MustCompile(`(\+251\s?\d{2}\s?\d{3}\s?\d{4}|\+251\d{9})`), Group: 1, Clean: cleanPhone},
		{Pattern: regexp.MustCompile(`\b(09\d{8})\b`), Group: 1, Clean: cleanPhone},
	}

	zoneEnRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)(?:Zone|Sub\s*City|Subcity)\s*[:：]?\s*([A-Za-z][A-Za-z 0-9.'\-]{1,40})`), Group: 1, Clean: CleanLatin},
	}

	zoneAmRules = []Rule{
		{Pattern: regexp.MustCompile(`(?:ዞን|ክፍለ\s*ከተማ)\s*[:：]?\s*(\p{Ethiopic}[\p{Ethiopic} 0-9]{1,40})`), Group: 1, Clean: CleanAmharic},
	}

	woredaEnRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)Woreda\s*[:：]?\s*([A-Za-z0-9][A-Za-z 0-9.'\-]{0,40})`), Group: 1, Clean: CleanLatin},
	}

	woredaAmRules = []Rule{
		{Pattern: regexp.MustCompile(`ወረዳ\s*[:：]?\s*(\p{Ethiopic}[\p{Ethiopic} 0-9]{0,40}|\d{1,3})`), Group: 1, Clean: CleanAmharic},
	}

	// Tier-three generic address fallbacks, only consulted when the
	// positional strategy and the alias table both come up empty.
	regionEnGeneric = []Rule{
		{Pattern: regexp.MustCompile(`(?i)([A-Za-z][A-Za-z ]{2,30}?)\s+Region\b`), Group: 1, Clean: CleanLatin},
	}

	regionAmGeneric = []Rule{
		{Pattern: regexp.MustCompile(`(\p{Ethiopic}[\p{Ethiopic} ]{1,30}?)\s*ክልል`), Group: 1, Clean: CleanAmharic},
	}
)
