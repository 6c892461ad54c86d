package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"voicescribe/internal/app"
	"voicescribe/internal/app/recognition"
	"voicescribe/internal/logger"
)

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the active provider, language and API keys",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		fmt.Printf("provider: %s\n", a.Settings.ActiveProvider())
		fmt.Printf("language: %s (%s)\n",
			a.Settings.ActiveLanguage(), recognition.LanguageName(a.Settings.ActiveLanguage()))

		configured := a.Settings.ConfiguredProviders()
		if len(configured) == 0 {
			fmt.Println("api keys: none configured")
		} else {
			fmt.Printf("api keys: %s\n", strings.Join(configured, ", "))
		}
	},
}

var setProviderCmd = &cobra.Command{
	Use:   "set-provider <id>",
	Short: "Select the active recognition provider",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		if err := a.SetActiveProvider(args[0]); err != nil {
			log.Fatalf("%v\n", err)
		}
		fmt.Printf("provider set to %s\n", args[0])
	},
}

var setLanguageCmd = &cobra.Command{
	Use:   "set-language <code>",
	Short: "Select the active recognition language",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		if err := a.SetActiveLanguage(args[0]); err != nil {
			log.Fatalf("%v\n", err)
		}
		fmt.Printf("language set to %s (%s)\n", args[0], recognition.LanguageName(args[0]))
	},
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key <provider> <credential>",
	Short: "Store an API key for a provider",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		if _, err := a.Registry.Resolve(args[0]); err != nil {
			log.Fatalf("%v\n", err)
		}
		a.Settings.SetCredential(args[0], args[1])
		fmt.Printf("credential stored for %s\n", args[0])
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported recognition languages",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range recognition.SupportedLanguages {
			fmt.Printf("%-8s %s\n", l.Code, l.Name)
		}
	},
}

func init() {
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(setProviderCmd)
	Cmd.AddCommand(setLanguageCmd)
	Cmd.AddCommand(setKeyCmd)
	Cmd.AddCommand(languagesCmd)
}

func mustApp() *app.App {
	logg := logger.MustNew(false)
	a, err := app.InitializeApp(logg)
	if err != nil {
		log.Fatalf("initialization failed: %v\n", err)
	}
	return a
}
