package providers

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"voicescribe/internal/app"
	"voicescribe/internal/logger"
)

// Cmd represents the providers command
var Cmd = &cobra.Command{
	Use:   "providers",
	Short: "List the available recognition providers",
	Long: `List the available recognition providers

- The active provider is marked with *
- Providers with an API key on file are marked configured`,
	Run: func(cmd *cobra.Command, args []string) {
		logg := logger.MustNew(false)
		defer logg.Sync()

		a, err := app.InitializeApp(logg)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer a.Close()

		active := a.Settings.ActiveProvider()
		for _, p := range a.Registry.List() {
			info := p.Info()

			marker := " "
			if info.ID == active {
				marker = "*"
			}

			status := "no credential needed"
			if info.RequiresCredential {
				if _, ok := a.Settings.Credential(info.ID); ok {
					status = "configured"
				} else {
					status = "missing API key"
				}
			}

			fmt.Printf("%s %-14s %-28s %s\n", marker, info.ID, info.DisplayName, status)
		}
	},
}
