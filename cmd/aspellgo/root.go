// Command aspellgo is a thin CLI over the checking library: it exists to
// exercise aspellcfg, speller, and checker end to end. It is explicitly
// not a reimplementation of the original aspell binary's full command
// surface (word-list management UI, curses mode, etc.).
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "aspellgo",
	Short: "A from-scratch Go reimplementation of the GNU Aspell checking engine",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		lvl, err := logrus.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			lvl = logrus.WarnLevel
		}
		log.SetLevel(lvl)
	},
}

func init() {
	rootCmd.PersistentFlags().String("lang", "en", "dictionary language tag")
	rootCmd.PersistentFlags().String("encoding", "", "external charset for input/output (default: utf-8)")
	rootCmd.PersistentFlags().StringSlice("filter", nil, "filter mode(s) to run before checking, e.g. tex, html")
	rootCmd.PersistentFlags().Bool("run-together", false, "accept run-together compound words")
	rootCmd.PersistentFlags().String("conf", "", "ASPELL_CONF-style \";\"-separated config overrides")
	rootCmd.PersistentFlags().String("log-level", "warn", "logrus level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("personal", "", "path to a personal word list to load in addition to the main dictionary")

	bindFlagToViper("lang", rootCmd.PersistentFlags().Lookup("lang"))
	bindFlagToViper("encoding", rootCmd.PersistentFlags().Lookup("encoding"))
	bindFlagToViper("filter", rootCmd.PersistentFlags().Lookup("filter"))
	bindFlagToViper("run-together", rootCmd.PersistentFlags().Lookup("run-together"))
	bindFlagToViper("conf", rootCmd.PersistentFlags().Lookup("conf"))
	bindFlagToViper("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlagToViper("personal", rootCmd.PersistentFlags().Lookup("personal"))
}

// bindFlagToViper binds a pflag to viper under key.
func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	if err := viper.BindPFlag(key, flag); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to bind flag")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
