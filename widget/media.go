package widget

import "strings"

// Media lists the assets a widget needs, in load order.
type Media struct {
	CSS []string
	JS  []string
}

const (
	select2CSS = "https://cdn.jsdelivr.net/npm/select2@4.0.13/dist/css/select2.min.css"
	select2JS  = "https://cdn.jsdelivr.net/npm/select2@4.0.13/dist/js/select2.full.min.js"
	i18nBase   = "https://cdn.jsdelivr.net/npm/select2@4.0.13/dist/js/i18n/"
	widgetJS   = "heavyselect/heavyselect.js"
)

func mediaFor(opts Options) Media {
	m := Media{
		CSS: []string{select2CSS},
		JS: []string{
			select2JS,
			i18nBase + I18nName(opts.Lang) + ".js",
			widgetJS,
		},
	}
	// overrides replace the lists wholesale; self-hosted bundles decide
	// their own load order
	if opts.MediaCSS != nil {
		m.CSS = append([]string{}, opts.MediaCSS...)
	}
	if opts.MediaJS != nil {
		m.JS = append([]string{}, opts.MediaJS...)
	}
	return m
}

// i18nNames are the translation files shipped with the select2 dist,
// keyed by lowercase tag.
var i18nNames = map[string]string{
	"af": "af", "ar": "ar", "az": "az", "bg": "bg", "bn": "bn", "bs": "bs",
	"ca": "ca", "cs": "cs", "da": "da", "de": "de", "dsb": "dsb", "el": "el",
	"en": "en", "eo": "eo", "es": "es", "et": "et", "eu": "eu", "fa": "fa",
	"fi": "fi", "fr": "fr", "gl": "gl", "he": "he", "hi": "hi", "hr": "hr",
	"hsb": "hsb", "hu": "hu", "hy": "hy", "id": "id", "is": "is", "it": "it",
	"ja": "ja", "ka": "ka", "km": "km", "ko": "ko", "lt": "lt", "lv": "lv",
	"mk": "mk", "ms": "ms", "nb": "nb", "ne": "ne", "nl": "nl", "pl": "pl",
	"ps": "ps", "pt-br": "pt-BR", "pt": "pt", "ro": "ro", "ru": "ru",
	"sk": "sk", "sl": "sl", "sq": "sq", "sr-cyrl": "sr-Cyrl", "sr": "sr",
	"sv": "sv", "th": "th", "tk": "tk", "tr": "tr", "uk": "uk", "vi": "vi",
	"zh-cn": "zh-CN", "zh-tw": "zh-TW",
}

// aliases map language tags whose select2 file goes by another name.
var aliases = map[string]string{
	"zh-hans": "zh-cn",
	"zh-hant": "zh-tw",
	"zh":      "zh-cn",
	"no":      "nb",
	"nn":      "nb",
}

// I18nName resolves a language tag to the matching select2 i18n file name.
// Falls back from full tag to base language, then to "en".
func I18nName(lang string) string {
	tag := strings.ToLower(strings.TrimSpace(lang))
	if alias, ok := aliases[tag]; ok {
		tag = alias
	}
	if name, ok := i18nNames[tag]; ok {
		return name
	}
	if base, _, found := strings.Cut(tag, "-"); found {
		if alias, ok := aliases[base]; ok {
			base = alias
		}
		if name, ok := i18nNames[base]; ok {
			return name
		}
	}
	return "en"
}
