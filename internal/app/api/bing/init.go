package bing

import "voicescribe/internal/app/recognition"

func init() {
	recognition.RegisterCreator("bing", newProvider)
}
