package wit

import "voicescribe/internal/app/recognition"

func init() {
	recognition.RegisterCreator("wit", newProvider)
}
