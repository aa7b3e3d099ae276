package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"github.com/wgomg/notesift/internal/config"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(v))
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func newCleanCommand() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Remove headers, references and duplicate lines",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup("error")
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !trace {
				cleaned := a.processor.Clean(text)
				if cleaned == "" {
					return nil
				}
				_, err = fmt.Fprintln(out, cleaned)
				return errors.WithStack(err)
			}

			for _, d := range a.processor.Trace(text) {
				status := "keep"
				if !d.Kept {
					status = "drop:" + d.Rule
				}
				if _, err := fmt.Fprintf(out, "%-24s %s\n", status, d.Input); err != nil {
					return errors.WithStack(err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print the decision for every line")
	return cmd
}

func newSummarizeCommand() *cobra.Command {
	var sentences int

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Print the most central sentences in document order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup("error")
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			m := config.ClampCount(sentences, a.cfg.Summary.DefaultSentences)
			return printLines(cmd.OutOrStdout(), a.processor.Summarize(text, m))
		},
	}

	cmd.Flags().IntVarP(&sentences, "sentences", "n", 0, "number of sentences (default from SUMMARY_DEFAULT_SENTENCES)")
	return cmd
}

func newKeyphrasesCommand() *cobra.Command {
	var count int
	var weights bool

	cmd := &cobra.Command{
		Use:   "keyphrases [file]",
		Short: "Print ranked keyphrases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup("error")
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			k := config.ClampCount(count, a.cfg.Keyphrase.DefaultCount)
			phrases := a.processor.RankedKeyphrases(text, k)
			lines := make([]string, len(phrases))
			for i, p := range phrases {
				lines[i] = p.Text
				if weights {
					lines[i] = fmt.Sprintf("%d\t%s", p.Weight, p.Text)
				}
			}
			return printLines(cmd.OutOrStdout(), lines)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "k", 0, "number of phrases (default from KEYPHRASE_DEFAULT_COUNT)")
	cmd.Flags().BoolVar(&weights, "weights", false, "prefix each phrase with its weight")
	return cmd
}

func newRetrieveCommand() *cobra.Command {
	var question string
	var count int

	cmd := &cobra.Command{
		Use:   "retrieve [file]",
		Short: "Print the paragraphs most relevant to a question",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(question) == "" {
				return errors.New("--question must not be empty")
			}
			a, err := setup("error")
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			k := config.ClampCount(count, a.cfg.Retrieval.TopK)
			focused := a.processor.Focus(question, text, k)
			if focused == "" {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), focused)
			return errors.WithStack(err)
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "question to rank paragraphs against")
	cmd.Flags().IntVarP(&count, "count", "k", 0, "number of paragraphs (default from RETRIEVAL_TOP_K)")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}

func newAnalyzeCommand() *cobra.Command {
	var sentences, count int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Clean a document, then summarize it and extract keyphrases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup("error")
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			m := config.ClampCount(sentences, a.cfg.Summary.DefaultSentences)
			k := config.ClampCount(count, a.cfg.Keyphrase.DefaultCount)
			analysis := a.processor.Analyze(text, m, k)

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, analysis)
			}

			fmt.Fprintf(out, "Summary (%d of %d sentences):\n", len(analysis.Summary), analysis.SentenceCount)
			for _, s := range analysis.Summary {
				fmt.Fprintf(out, "  - %s\n", s)
			}
			fmt.Fprintln(out, "Keyphrases:")
			_, err = fmt.Fprintf(out, "  %s\n", strings.Join(analysis.Keyphrases, ", "))
			return errors.WithStack(err)
		},
	}

	cmd.Flags().IntVarP(&sentences, "sentences", "n", 0, "number of summary sentences")
	cmd.Flags().IntVarP(&count, "count", "k", 0, "number of keyphrases")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}
