package transcribe

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"voicescribe/internal/app"
	"voicescribe/internal/app/converter"
	"voicescribe/internal/app/export"
	"voicescribe/internal/app/recognition"
	"voicescribe/internal/logger"
)

var wavFile string
var wavDir string
var showProgress bool
var outputFile string
var outputFormat string

func init() {
	Cmd.Flags().StringVarP(&wavFile, "file", "f", "", "transcribe a single wav file")
	Cmd.Flags().StringVarP(&wavDir, "dir", "d", "", "transcribe every wav file in a directory, in name order")
	Cmd.Flags().BoolVarP(&showProgress, "progress", "p", true, "render a progress bar for directory batches")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the resulting transcripts to a file after the batch")
	Cmd.Flags().StringVar(&outputFormat, "format", "txt", "output format: txt, json, csv or xlsx")

	Cmd.MarkFlagsOneRequired("file", "dir")
	Cmd.MarkFlagsMutuallyExclusive("file", "dir")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe wav files without a live session",
	Long: `Transcribe wav files without a live session

- A single file prints its transcription directly
- A directory is processed file by file with a progress bar
- Use --output to save the transcripts once the batch completes`,
	Run: func(cmd *cobra.Command, args []string) {
		logg := logger.MustNew(false)
		defer logg.Sync()

		a, err := app.InitializeApp(logg)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer a.Close()

		ctx := context.Background()

		if wavFile != "" {
			out, err := a.Converter.ConvertFile(ctx, wavFile)
			if err != nil {
				log.Fatalf("transcription failed: %v\n", err)
			}
			printOutcome(wavFile, out)
		} else {
			results, err := a.Converter.ConvertDir(ctx, wavDir, converter.ProgressConfig{Enabled: showProgress})
			if err != nil {
				log.Fatalf("batch failed: %v\n", err)
			}
			for _, r := range results {
				if r.Err != nil {
					fmt.Printf("%s: error: %v\n", r.Path, r.Err)
					continue
				}
				printOutcome(r.Path, r.Outcome)
			}
		}

		if outputFile != "" {
			if err := writeOutput(a); err != nil {
				log.Fatalf("export failed: %v\n", err)
			}
			fmt.Printf("transcripts written to %s\n", outputFile)
		}
	},
}

func printOutcome(path string, out recognition.Outcome) {
	switch out.Kind {
	case recognition.OutcomeText:
		fmt.Printf("%s: %s\n", path, out.Text)
	case recognition.OutcomeNoSpeech:
		fmt.Printf("%s: (no speech detected)\n", path)
	default:
		fmt.Printf("%s: failed (%s): %s\n", path, out.Failure, out.Detail)
	}
}

func writeOutput(a *app.App) error {
	format, err := export.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return export.Write(f, format, a.Ledger.All())
}
