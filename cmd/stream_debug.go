package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/radworks/radchat/pkg/decoder"
)

// cannedStream is a recorded response split at awkward boundaries, including
// a marker cut across two chunks. Useful for eyeballing decoder behavior
// without a backend.
var cannedStream = []string{
	"Let me check the phone directory. ",
	"__TOOL_STA",
	"RT__search_phone_directory__",
	`__TOOL_RESULT__{"type":"contacts","tool":"search_phone_directory","data":{"results":[{"department":"CT Reading Room","phone":"919-555-0100","available_now":true}]}} __`,
	"You can reach the CT reading room ",
	"at extension 0100.",
}

var streamDebugCmd = &cobra.Command{
	Use:    "stream-debug",
	Short:  "Replay a canned stream through the decoder",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var state decoder.State

		dump := func(events []decoder.Event) error {
			for _, ev := range events {
				switch ev := ev.(type) {
				case decoder.Text:
					fmt.Printf("text      %q\n", ev.Content)
				case decoder.ToolStarted:
					fmt.Printf("started   %s\n", ev.ToolName)
				case decoder.ToolCompleted:
					fmt.Printf("completed %s kind=%s\n", ev.ToolID, ev.Kind)
					pretty, err := json.MarshalIndent(json.RawMessage(ev.Payload.Data), "  ", "  ")
					if err != nil {
						return err
					}
					fmt.Print("  ")
					if err := quick.Highlight(os.Stdout, string(pretty), "json", "terminal256", "monokai"); err != nil {
						return err
					}
					fmt.Println()
				}
			}
			return nil
		}

		for i, chunk := range cannedStream {
			fmt.Printf("-- chunk %d: %q\n", i+1, chunk)
			var events []decoder.Event
			state, events = decoder.Scan(state, chunk)
			if err := dump(events); err != nil {
				return err
			}
		}

		fmt.Println("-- end of stream")
		return dump(decoder.Finish(state))
	},
}

func init() {
	rootCmd.AddCommand(streamDebugCmd)
}
