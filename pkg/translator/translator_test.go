package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskboard/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

func TestInitTranslator_LoadsTomlOnly(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"en.toml":   `taskNotFound = "Task not found"`,
		"fr.toml":   `taskNotFound = "Tâche introuvable"`,
		"notes.txt": `taskNotFound = "ignored"`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.toml"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	for lang, expected := range map[string]string{
		translator.LanguageEn: "Task not found",
		translator.LanguageFr: "Tâche introuvable",
	} {
		localizer := i18n.NewLocalizer(translator.Translator, lang)
		msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: "taskNotFound"})
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", lang, err)
		}
		if msg != expected {
			t.Errorf("%s: expected %q, got %q", lang, expected, msg)
		}
	}
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})

	if translator.Translator == nil {
		t.Fatal("expected an empty bundle, got nil")
	}
	localizer := i18n.NewLocalizer(translator.Translator, translator.LanguageEn)
	if _, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: "taskNotFound"}); err == nil {
		t.Error("expected a missing message error")
	}
}

func TestMatchLanguage(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	tests := map[string]string{
		"":                        translator.LanguageEn,
		"fr":                      translator.LanguageFr,
		"fr-FR,fr;q=0.9,en;q=0.8": translator.LanguageFr,
		"de-DE":                   translator.LanguageEn,
		"en-GB":                   translator.LanguageEn,
		"not a header;;;":         translator.LanguageEn,
	}
	for header, want := range tests {
		if got := translator.MatchLanguage(header); got != want {
			t.Errorf("MatchLanguage(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestTranslationFiles_HaveSameKeys(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	tags := translator.Translator.LanguageTags()
	if len(tags) < 2 {
		t.Fatalf("expected en and fr bundles, got %v", tags)
	}

	enLocalizer := i18n.NewLocalizer(translator.Translator, translator.LanguageEn)
	frLocalizer := i18n.NewLocalizer(translator.Translator, translator.LanguageFr)
	for _, key := range []string{"taskNotFound", "configInUse", "dependencyUnavailable", "invalidReorderTarget"} {
		enMsg, err := enLocalizer.Localize(&i18n.LocalizeConfig{MessageID: key})
		if err != nil {
			t.Fatalf("missing en message %q: %v", key, err)
		}
		frMsg, err := frLocalizer.Localize(&i18n.LocalizeConfig{MessageID: key})
		if err != nil {
			t.Fatalf("missing fr message %q: %v", key, err)
		}
		if enMsg == frMsg {
			t.Errorf("message %q is not translated", key)
		}
	}
}
