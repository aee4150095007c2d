package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var personalAddCmd = &cobra.Command{
	Use:   "personal-add <word>",
	Short: "Add a word to the personal dictionary named by --personal and save it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			log.WithError(err).Error("failed to build checking engine")
			return err
		}
		defer eng.Close()
		if eng.sp.Personal == nil {
			return fmt.Errorf("no_wordlist_for_lang: pass --personal to select a personal dictionary file")
		}
		if err := eng.sp.AddToPersonal(args[0]); err != nil {
			log.WithError(err).WithField("word", args[0]).Error("add_to_personal failed")
			return err
		}
		if err := eng.sp.Personal.SaveNoupdate(); err != nil {
			log.WithError(err).Error("saving personal dictionary failed")
			return err
		}
		cmd.Printf("added %q to %s\n", args[0], eng.cfg.String("personal"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(personalAddCmd)
}
