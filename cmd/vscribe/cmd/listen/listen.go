package listen

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"voicescribe/internal/app"
	"voicescribe/internal/app/audio"
	"voicescribe/internal/app/ledger"
	"voicescribe/internal/app/session"
	"voicescribe/internal/logger"
)

var spoolDir string
var archive bool

func init() {
	Cmd.Flags().StringVarP(&spoolDir, "spool", "s", "",
		"spool directory watched for incoming wav files, one file per utterance")
	Cmd.Flags().BoolVarP(&archive, "archive", "a", false,
		"save the session transcript to the archive on stop")

	Cmd.MarkFlagRequired("spool")
}

// Cmd represents the listen command
var Cmd = &cobra.Command{
	Use:   "listen",
	Short: "Listen continuously and transcribe each captured utterance",
	Long: `Listen continuously and transcribe each captured utterance

- Watches the spool directory for wav files and transcribes each one
- Transcriptions print as they complete; order follows completion
- Interactive controls: p pause, r resume, q stop and quit`,
	Run: func(cmd *cobra.Command, args []string) {
		logg := logger.MustNew(true)
		defer logg.Sync()

		a, err := app.InitializeApp(logg)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer a.Close()

		src, err := audio.NewDirSource(spoolDir)
		if err != nil {
			log.Fatalf("cannot watch spool directory: %v\n", err)
		}

		cfg := session.Config{
			SourceTag: "live",
			OnTranscript: func(e ledger.Entry) {
				fmt.Printf("[%s] %s\n", e.Timestamp.Format("15:04:05"), e.Text)
			},
		}

		id, err := a.StartListening(src, cfg)
		if err != nil {
			log.Fatalf("could not start listening: %v\n", err)
		}
		fmt.Printf("listening (session %s): provider=%s language=%s\n",
			id, a.Settings.ActiveProvider(), a.Settings.ActiveLanguage())
		fmt.Println("controls: p=pause, r=resume, q=quit")

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			switch strings.TrimSpace(scanner.Text()) {
			case "p":
				if err := a.PauseListening(); err != nil {
					fmt.Println(err)
					continue
				}
				fmt.Println("paused")
			case "r":
				if err := a.ResumeListening(); err != nil {
					fmt.Println(err)
					continue
				}
				fmt.Println("resumed")
			case "q":
				if err := a.StopListening(archive); err != nil {
					fmt.Println(err)
					continue
				}
				fmt.Printf("stopped, %d transcripts this run\n", a.Ledger.Len())
				return
			}
		}
	},
}
