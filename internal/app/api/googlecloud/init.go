package googlecloud

import "voicescribe/internal/app/recognition"

func init() {
	recognition.RegisterCreator("google_cloud", newProvider)
}
