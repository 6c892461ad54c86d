package whisper

import "voicescribe/internal/app/recognition"

func init() {
	recognition.RegisterCreator("openai", newProvider)
}
