// Package carddata defines the data model shared across the card
// digitization pipeline: positioned glyph runs coming out of the PDF
// reader, reconstructed text lines, and the bilingual profile record
// that the extractor fills in and the card compositor renders.
package carddata

// GlyphRun is one positioned text fragment from a PDF page.
// X is the left edge and Y the baseline, both in page units with the
// PDF convention of a bottom-up Y axis.
type GlyphRun struct {
	Text     string
	X        float64
	Y        float64
	FontSize float64
}

// TextLine is an ordered group of glyph runs merged into a single line
// of visual text. Y is the baseline of the first run in the line.
type TextLine struct {
	Text string
	Y    float64
}

// Side selects the front or back of the card.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

// ProfileRecord is the structured bilingual identity data extracted
// from a document. Every field is a plain string and defaults to the
// empty string, never a nil-able type, so rendering can always read a
// field without checking for presence.
type ProfileRecord struct {
	NameAm string `json:"name_am"`
	NameEn string `json:"name_en"`

	DateOfBirthAm string `json:"date_of_birth_am"`
	DateOfBirthEn string `json:"date_of_birth_en"`

	SexAm string `json:"sex_am"`
	SexEn string `json:"sex_en"`

	NationalityAm string `json:"nationality_am"`
	NationalityEn string `json:"nationality_en"`

	Phone string `json:"phone"`

	RegionAm string `json:"region_am"`
	RegionEn string `json:"region_en"`
	ZoneAm   string `json:"zone_am"`
	ZoneEn   string `json:"zone_en"`
	WoredaAm string `json:"woreda_am"`
	WoredaEn string `json:"woreda_en"`

	// FCN is the primary 16-digit identifier, canonically formatted as
	// four space-separated 4-digit groups. FIN is the shorter secondary
	// identifier. SerialNumber is the physical card serial.
	FCN          string `json:"fcn"`
	FIN          string `json:"fin"`
	SerialNumber string `json:"serial_number"`
}

// Fields returns the record as a field-key to value map. The keys are
// the ones the placement tables use to address card text slots.
func (r *ProfileRecord) Fields() map[string]string {
	return map[string]string{
		"name_am":          r.NameAm,
		"name_en":          r.NameEn,
		"date_of_birth_am": r.DateOfBirthAm,
		"date_of_birth_en": r.DateOfBirthEn,
		"sex_am":           r.SexAm,
		"sex_en":           r.SexEn,
		"nationality_am":   r.NationalityAm,
		"nationality_en":   r.NationalityEn,
		"phone":            r.Phone,
		"region_am":        r.RegionAm,
		"region_en":        r.RegionEn,
		"zone_am":          r.ZoneAm,
		"zone_en":          r.ZoneEn,
		"woreda_am":        r.WoredaAm,
		"woreda_en":        r.WoredaEn,
		"fcn":              r.FCN,
		"fin":              r.FIN,
		"serial_number":    r.SerialNumber,
	}
}

// IsEmpty reports whether no field at all was extracted.
func (r *ProfileRecord) IsEmpty() bool {
	for _, v := range r.Fields() {
		if v != "" {
			return false
		}
	}
	return true
}
