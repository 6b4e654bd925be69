package i18n

import "strings"

// Translator retrieves localized messages for value error codes.
// data provides optional metadata to embed in the message ("expected",
// "actual", "description").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			tmpl = "型が一致しません ({expected} を期待しましたが {actual} でした)"
		case "missing_key":
			tmpl = "キーがありません"
		case "invalid_value":
			tmpl = "値が不正です: {description}"
		case "unresolved_schema":
			tmpl = "関連スキーマを解決できません"
		case "required_cycle":
			tmpl = "必須の関連が循環しています"
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			tmpl = "type mismatch: expected {expected}, got {actual}"
		case "missing_key":
			tmpl = "missing key"
		case "invalid_value":
			tmpl = "invalid value: {description}"
		case "unresolved_schema":
			tmpl = "related schema cannot be resolved"
		case "required_cycle":
			tmpl = "required to-one relationships form a cycle"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
