package azure

import "voicescribe/internal/app/recognition"

func init() {
	recognition.RegisterCreator("azure", newProvider)
}
