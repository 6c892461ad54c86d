package export

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"voicescribe/internal/app"
	"voicescribe/internal/app/export"
	"voicescribe/internal/logger"
)

var sessionID string
var outputFilePath string
var format string

func init() {
	Cmd.Flags().StringVarP(&sessionID, "session", "s", "",
		"archived session to export; defaults to the most recent")
	Cmd.Flags().StringVarP(&outputFilePath, "output", "o", "", "set outputFilePath")
	Cmd.Flags().StringVarP(&format, "format", "f", "txt", "export format: txt, json, csv or xlsx")

	Cmd.MarkFlagRequired("output")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export an archived session's transcripts to a file",
	Long: `Export an archived session's transcripts to a file

- Exports the most recent archived session unless --session is given
- Supports plain text, JSON, CSV and Excel output`,
	Run: func(cmd *cobra.Command, args []string) {
		logg := logger.MustNew(false)
		defer logg.Sync()

		a, err := app.InitializeApp(logg)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer a.Close()

		f, err := export.ParseFormat(format)
		if err != nil {
			log.Fatalf("%v\n", err)
		}

		id := sessionID
		if id == "" {
			recent, err := a.Archive.RecentSessions(1)
			if err != nil {
				log.Fatalf("could not list archived sessions: %v\n", err)
			}
			if len(recent) == 0 {
				log.Fatalf("no archived sessions to export\n")
			}
			id = recent[0].SessionID
		}

		entries, err := a.Archive.GetSession(id)
		if err != nil {
			log.Fatal(err)
		}
		if len(entries) == 0 {
			log.Fatalf("session %s not found in archive\n", id)
		}

		out, err := os.Create(outputFilePath)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()

		if err := export.Write(out, f, entries); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
