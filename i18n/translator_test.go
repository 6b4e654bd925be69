package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("missing_key", nil); msg != "missing key" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("missing_key", nil); msg == "missing key" || msg == "missing_key" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_ExpandsData(t *testing.T) {
	msg := T("type_mismatch", map[string]string{"expected": "string", "actual": "null"})
	if msg != "type mismatch: expected string, got null" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("nope", nil); msg != "nope" {
		t.Fatalf("expected code fallback, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("missing_key", nil); msg != "X:missing_key" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("missing_key", nil); msg != "missing key" {
		t.Fatalf("expected reset to en, got %q", msg)
	}
}
