package main

import (
	"fmt"
	"os"

	"voicescribe/cmd/vscribe/cmd"
	"voicescribe/internal/config"

	// Import providers to register them
	_ "voicescribe/internal/app/api/azure"
	_ "voicescribe/internal/app/api/bing"
	_ "voicescribe/internal/app/api/gemini"
	_ "voicescribe/internal/app/api/google"
	_ "voicescribe/internal/app/api/googlecloud"
	_ "voicescribe/internal/app/api/whisper"
	_ "voicescribe/internal/app/api/wit"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cmd.Execute()
}
