package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Report misspelled words, GNU Aspell \"list\" style: one per line, name:line:col: word",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			log.WithError(err).Error("failed to build checking engine")
			return err
		}

		defer eng.Close()

		if len(args) == 0 {
			return checkReader(eng, cmd.OutOrStdout(), cmd.InOrStdin(), "<stdin>")
		}
		for _, path := range args {
			f, openErr := os.Open(path)
			if openErr != nil {
				log.WithError(openErr).WithField("path", path).Error("cant_read_file")
				return fmt.Errorf("cant_read_file: %w", openErr)
			}
			err := checkReader(eng, cmd.OutOrStdout(), f, path)
			f.Close()
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkReader feeds name's lines into eng's checker one at a time (so a
// line break always bounds a word the way GNU Aspell's pipe mode treats
// stdin line-by-line) and prints every misspelling found.
func checkReader(eng *engine, out io.Writer, in io.Reader, name string) error {
	eng.chk.Reset()

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		if err := eng.chk.Process(sc.Text(), 0, line); err != nil {
			return fmt.Errorf("bad_value: line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("cant_read_file: %s: %w", name, err)
	}

	found := 0
	for {
		tok, ok := eng.chk.NextMisspelling()
		if !ok {
			break
		}
		found++
		lineNo, _ := tok.Which.(int)
		fmt.Fprintf(out, "%s:%d:%d: %s\n", name, lineNo, tok.Begin+1, tok.Word)
	}
	log.WithField("path", name).WithField("misspellings", found).Debug("check complete")
	return nil
}
