package main

import (
	"io"
	"os"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"github.com/wgomg/notesift/internal/config"
	"github.com/wgomg/notesift/internal/processor"
	"github.com/wgomg/notesift/internal/utils"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "notesift",
		Short: "Clean, summarize and query OCR'd lecture notes",
		Long: `notesift turns noisy OCR text into cleaned text, an extractive summary,
ranked keyphrases and the paragraphs most relevant to a question.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newCleanCommand(),
		newSummarizeCommand(),
		newKeyphrasesCommand(),
		newRetrieveCommand(),
		newAnalyzeCommand(),
	)
	return root
}

type app struct {
	cfg       *config.Config
	logger    *utils.Logger
	processor *processor.Processor
}

// setup loads and validates configuration and builds the processor. CLI
// commands other than serve pass "error" so logs stay off stdout.
func setup(logLevel string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logLevel == "" {
		logLevel = cfg.App.LogLevel
	}
	logger := utils.NewLogger(logLevel, cfg.App.RawBodyLog)

	proc, err := processor.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, processor: proc}, nil
}

// readInput reads the file named by the first argument, or stdin when there
// is none or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, "read stdin")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.Wrapf(err, "read %q", args[0])
	}
	return string(data), nil
}
