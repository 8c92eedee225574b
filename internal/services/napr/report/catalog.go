package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// message keys double as the english text
const (
	keyTitle       = "SEMD submission complete"
	keySummary     = "Unique doctors with a filled profile who issued an examination referral on %s: %d"
	keyEmpty       = "No examination referrals found"
	keyFailed      = "Registration failed for %d of %d"
	keyInterrupted = "Run interrupted: %d not started"
	keyProgress    = "Registering referrals"
	keyBusy        = "Another run is already processing %s"
	keyOverride    = "Window override ignored, using %s: %v"
	keyFatal       = "Run failed: %v"
	keyRegistered  = "register"
	keyError       = "error"
)

var ru = map[string]string{
	keyTitle:       "Отправка СЭМД завершена",
	keySummary:     "Уникальных врачей с заполненным профилем, выполнивших направление на обследование %s: %d",
	keyEmpty:       "Направлений на обследование не найдено",
	keyFailed:      "Не удалось зарегистрировать: %d из %d",
	keyInterrupted: "Запуск прерван, не начато: %d",
	keyProgress:    "Регистрация направлений",
	keyBusy:        "Дата %s уже обрабатывается другим запуском",
	keyOverride:    "Период из параметров проигнорирован, используется %s: %v",
	keyFatal:       "Запуск завершился ошибкой: %v",
}

var cat = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for k, v := range ru {
		_ = b.SetString(language.Russian, k, v)
	}
	for _, k := range []string{keyTitle, keySummary, keyEmpty, keyFailed, keyInterrupted, keyProgress, keyBusy, keyOverride, keyFatal, keyRegistered, keyError} {
		_ = b.SetString(language.English, k, k)
	}
	return b
}

// Tag maps the configured report language to a catalog tag; anything but "en" is russian
func Tag(lang string) language.Tag {
	if lang == "en" {
		return language.English
	}
	return language.Russian
}

// Printer returns a message printer for lang backed by the report catalog
func Printer(lang string) *message.Printer {
	return message.NewPrinter(Tag(lang), message.Catalog(cat))
}
