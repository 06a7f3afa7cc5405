package templates

import (
	admini18n "github.com/louisbranch/crm-console/internal/services/admin/i18n"
	"golang.org/x/text/language"
)

// LanguageOption represents a supported language option in the admin UI.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// LanguageOptions returns supported language options with active selection.
func LanguageOptions(lang, currentPath, currentQuery string) []LanguageOption {
	active, err := language.Parse(lang)
	if err != nil {
		active = admini18n.Default()
	}
	supported := admini18n.Supported()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  languageLabel(tag),
			URL:    admini18n.LanguageURL(currentPath, currentQuery, tag),
			Active: tag == active,
		})
	}
	return options
}

// languageLabel names a language in its own tongue.
func languageLabel(tag language.Tag) string {
	switch tag.String() {
	case "pt-BR":
		return "Português (Brasil)"
	case "en":
		return "English"
	default:
		return tag.String()
	}
}
