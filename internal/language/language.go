package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    string   // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	tag     string   // Proofing tag with the most common region
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", "en-US", []string{"english"}},
	{"es", "spa", "", "Spanish", "es-ES", []string{"spanish", "español", "espanol"}},
	{"fr", "fra", "fre", "French", "fr-FR", []string{"french", "français", "francais"}},
	{"de", "deu", "ger", "German", "de-DE", []string{"german", "deutsch"}},
	{"it", "ita", "", "Italian", "it-IT", []string{"italian", "italiano"}},
	{"pt", "por", "", "Portuguese", "pt-BR", []string{"portuguese", "português", "portugues"}},
	{"ja", "jpn", "", "Japanese", "ja-JP", []string{"japanese"}},
	{"ko", "kor", "", "Korean", "ko-KR", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", "zh-CN", []string{"chinese", "mandarin"}},
	{"ru", "rus", "", "Russian", "ru-RU", []string{"russian"}},
	{"ar", "ara", "", "Arabic", "ar-SA", []string{"arabic"}},
	{"hi", "hin", "", "Hindi", "hi-IN", []string{"hindi"}},
	{"nl", "nld", "dut", "Dutch", "nl-NL", []string{"dutch", "nederlands"}},
	{"pl", "pol", "", "Polish", "pl-PL", []string{"polish", "polski"}},
	{"sv", "swe", "", "Swedish", "sv-SE", []string{"swedish", "svenska"}},
	{"da", "dan", "", "Danish", "da-DK", []string{"danish", "dansk"}},
	{"no", "nor", "", "Norwegian", "nb-NO", []string{"norwegian", "norsk"}},
	{"fi", "fin", "", "Finnish", "fi-FI", []string{"finnish", "suomi"}},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages)*2)
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

func lookup(value string) *entry {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return nil
	}
	if e, ok := byCode2[value]; ok {
		return e
	}
	if e, ok := byCode3[value]; ok {
		return e
	}
	if e, ok := byWord[value]; ok {
		return e
	}
	return nil
}

// parseTag accepts BCP 47 tags only; free text such as "Brazilian
// Portuguese" is left to the caller.
func parseTag(value string) (xlanguage.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.ContainsAny(value, " \t") {
		return xlanguage.Und, false
	}
	tag, err := xlanguage.Parse(value)
	if err != nil || tag == xlanguage.Und {
		return xlanguage.Und, false
	}
	return tag, true
}

// DisplayName returns the English name for a language. Values it cannot
// resolve come back trimmed, so any language the model understands can
// still be requested.
func DisplayName(value string) string {
	value = strings.TrimSpace(value)
	if e := lookup(value); e != nil {
		return e.display
	}
	if tag, ok := parseTag(value); ok {
		if name := display.English.Tags().Name(tag); name != "" {
			return name
		}
	}
	return value
}

// Tag returns the BCP 47 proofing tag for a language, or "" when unknown.
func Tag(value string) string {
	if e := lookup(value); e != nil {
		return e.tag
	}
	if tag, ok := parseTag(value); ok {
		return tag.String()
	}
	return ""
}
