package language

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "per" vs "fas")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "persian", "farsi")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"fa", "fas", "per", "Persian", []string{"persian", "farsi"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"tr", "tur", "", "Turkish", []string{"turkish"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language code or word to ISO 639-1.
// Returns empty string for unrecognized input.
func ToISO2(code string) string {
	if e := lookup(code); e != nil {
		return e.code2
	}
	return ""
}

// Display returns the human-readable name for a recognized code or word.
// Unrecognized input is title-cased as-is so folder names still render cleanly.
func Display(code string) string {
	if e := lookup(code); e != nil {
		return e.display
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	return cases.Title(language.English).String(code)
}

// IsEnglish reports whether name refers to English in any recognized form.
func IsEnglish(name string) bool {
	return ToISO2(name) == "en"
}

// RightToLeft reports whether the language renders right to left.
func RightToLeft(code string) bool {
	switch ToISO2(code) {
	case "fa", "ar":
		return true
	default:
		return false
	}
}
