package translator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if tags := parseTags(cfg.SupportedLanguages); len(tags) > 0 {
		matcher = language.NewMatcher(tags)
	}

	files, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// MatchLanguage picks the best supported language for an Accept-Language
// header value, falling back to English.
func MatchLanguage(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	tag, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LanguageEn
	}
	base, _ := tag.Base()
	return base.String()
}

func parseTags(languages []string) []language.Tag {
	tags := make([]language.Tag, 0, len(languages)+1)
	tags = append(tags, language.English)
	for _, l := range languages {
		tag, err := language.Parse(l)
		if err != nil || tag == language.English {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
