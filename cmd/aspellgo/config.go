package main

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var dumpConfigKeys = []string{
	"lang", "encoding", "data-encoding", "run-together", "run-together-min",
	"run-together-limit", "ignore-case", "ignore-accents", "span-strings",
	"home-dir", "data-dir", "personal", "repl",
}

var dumpConfigListKeys = []string{"filter"}

var dumpConfigCmd = &cobra.Command{
	Use:   "dump-config",
	Short: "Print the merged configuration (defaults, filter contributions, flags, --conf overrides)",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			log.WithError(err).Error("failed to build checking engine")
			return err
		}
		defer eng.Close()
		keys := append([]string(nil), dumpConfigKeys...)
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("%s = %s\n", k, eng.cfg.String(k))
		}
		for _, k := range dumpConfigListKeys {
			cmd.Printf("%s = %s\n", k, strings.Join(eng.cfg.List(k), ","))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpConfigCmd)
}
