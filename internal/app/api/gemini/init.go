package gemini

import "voicescribe/internal/app/recognition"

func init() {
	recognition.RegisterCreator("gemini", newProvider)
}
