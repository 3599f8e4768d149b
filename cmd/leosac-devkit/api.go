package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leosac/devkit/internal/wsapi"
)

var (
	apiFormat   string
	apiEnvelope bool
)

// parseContent validates the optional request content argument as JSON.
func parseContent(arg string) (json.RawMessage, error) {
	if arg == "" {
		return nil, nil
	}
	if !json.Valid([]byte(arg)) {
		return nil, fmt.Errorf("request content is not valid JSON: %q", arg)
	}
	return json.RawMessage(arg), nil
}

var apiCmd = &cobra.Command{
	Use:   "api <type> [content]",
	Short: "Send one request on the daemon's websocket API",
	Long: `Send a single request to the daemon's websocket API and print the
response. The message type is the daemon's request name (for example
get_leosac_version); content, when given, must be a JSON document.

Examples:
  leosac-devkit api get_leosac_version
  leosac-devkit api audit.get '{"audit_entry_id": 3}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := newFormatter(apiFormat)
		if err != nil {
			return err
		}
		formatter.SetWriter(cmd.OutOrStdout())

		contentArg := ""
		if len(args) == 2 {
			contentArg = args[1]
		}
		content, err := parseContent(contentArg)
		if err != nil {
			return err
		}

		ctx, cancel := daemonContext()
		defer cancel()

		client, err := wsapi.Dial(ctx, cfg.APIEndpoint())
		if err != nil {
			return err
		}
		defer client.Close()

		response, err := client.Call(ctx, args[0], content)
		if err != nil {
			return err
		}

		if apiEnvelope {
			return formatter.Print(response)
		}
		var decoded any
		if len(response.Content) > 0 {
			if err := response.DecodeContent(&decoded); err != nil {
				return err
			}
		}
		return formatter.Print(decoded)
	},
}

func init() {
	apiCmd.Flags().StringVar(&apiFormat, "format", "pretty", "Output format: text, json or pretty")
	apiCmd.Flags().BoolVar(&apiEnvelope, "envelope", false, "Print the full response envelope, not just its content")
}
