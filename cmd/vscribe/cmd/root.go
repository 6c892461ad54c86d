package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"voicescribe/cmd/vscribe/cmd/config"
	"voicescribe/cmd/vscribe/cmd/export"
	"voicescribe/cmd/vscribe/cmd/listen"
	"voicescribe/cmd/vscribe/cmd/providers"
	"voicescribe/cmd/vscribe/cmd/serve"
	"voicescribe/cmd/vscribe/cmd/transcribe"
	"voicescribe/cmd/vscribe/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vscribe",
	Short: "Transcribe speech to text with interchangeable recognition backends",
	Long: `Transcribe speech to text with interchangeable recognition backends.
- Listen continuously on a spool directory and transcribe each utterance
- Batch-transcribe wav files or whole directories
- Switch provider, language and API keys without restarting`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(listen.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(providers.Cmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
