package recognition

// Language pairs a BCP-47 code with its display name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupportedLanguages lists the recognition languages offered to users, in
// menu order.
var SupportedLanguages = []Language{
	{"en-US", "English (US)"},
	{"en-GB", "English (UK)"},
	{"es-ES", "Spanish (Spain)"},
	{"es-MX", "Spanish (Mexico)"},
	{"fr-FR", "French"},
	{"de-DE", "German"},
	{"it-IT", "Italian"},
	{"pt-BR", "Portuguese (Brazil)"},
	{"ru-RU", "Russian"},
	{"ja-JP", "Japanese"},
	{"ko-KR", "Korean"},
	{"zh-CN", "Chinese (Simplified)"},
	{"ar-SA", "Arabic"},
}

// IsSupportedLanguage reports whether code is in the catalog.
func IsSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// LanguageName returns the display name for code, or the code itself when
// it is not in the catalog.
func LanguageName(code string) string {
	for _, l := range SupportedLanguages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}
