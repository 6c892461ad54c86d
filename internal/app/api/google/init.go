package google

import "voicescribe/internal/app/recognition"

func init() {
	recognition.RegisterCreator("google", newProvider)
}
