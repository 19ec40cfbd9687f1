// Package commands provides CLI commands for soulguide.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version info (set at build time)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// NewRootCmd creates the soulguide command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	var (
		opts     askOptions
		fileFlag string
	)

	cmd := &cobra.Command{
		Use:   "soulguide [prompt]",
		Short: "Terminal chat with a spiritual guide powered by Gemini",
		Long: `soulguide is a terminal chat with a guide who works with metaphorical
association cards. Replies come from the Gemini API and may include a
generated card image. Set GEMINI_API_KEY in the environment or in a .env file.

Examples:
  soulguide                              Start the guided chat
  soulguide "Витягни мені карту"         Ask a single question
  soulguide ask "Що мене тривожить?" -i photo.jpg
  cat note.md | soulguide                Read the question from stdin
  soulguide "Привіт" -o reply.md         Save the reply to a file
  soulguide config                       Show the effective configuration`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "soulguide %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if fileFlag != "" {
				data, err := os.ReadFile(fileFlag)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runAsk(cmd.Context(), deps, string(data), opts)
			}

			if len(args) > 0 {
				return runAsk(cmd.Context(), deps, args[0], opts)
			}

			if deps.stdinPiped() {
				data, err := io.ReadAll(deps.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				return runAsk(cmd.Context(), deps, string(data), opts)
			}

			// No input: open the chat
			return runChat(deps)
		},
	}

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the question from a file")
	opts.bind(cmd)
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewAskCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "soulguide"))
		os.Exit(1)
	}
}
