package utils

// Minimal server-side i18n for fixed keys. Question text is localized in
// the database; this table covers only the handful of messages the server
// itself renders.

var translations = map[string]map[string]string{
	"en": {
		"health.ok":                    "ok",
		"errors.incomplete_submission": "Please answer every question before submitting.",
		"errors.unknown_question":      "Your questionnaire is out of date. Please reload and try again.",
		"errors.invalid_answer_value":  "Answers must be either agree or disagree.",
		"errors.duplicate_answer":      "A question was answered more than once. Please reload and try again.",
		"errors.not_found":             "Nothing here yet.",
		"errors.unauthorized":          "Invalid credentials.",
		"errors.conflict":              "That email is already registered.",
	},
	"es": {
		"health.ok":                    "ok",
		"errors.incomplete_submission": "Responde todas las preguntas antes de enviar.",
		"errors.unknown_question":      "Tu cuestionario está desactualizado. Recarga la página e inténtalo de nuevo.",
		"errors.invalid_answer_value":  "Las respuestas deben ser de acuerdo o en desacuerdo.",
		"errors.duplicate_answer":      "Una pregunta se respondió más de una vez. Recarga la página e inténtalo de nuevo.",
		"errors.not_found":             "Aún no hay nada aquí.",
		"errors.unauthorized":          "Credenciales inválidas.",
		"errors.conflict":              "Ese correo ya está registrado.",
	},
}

// T returns the translated string for key in locale; falls back to
// English, then to the key itself.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := translations["en"]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}
