// Package cmd is for command line interactions with the seqslice
// application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// RootCmd represents the base command when called without any
// subcommands.
var RootCmd = &cobra.Command{
	Use: "seqslice",
	Short: `Slice bounded subgraphs out of bidirected sequence graphs.
Extract the subgraph connecting two oriented positions, sort graphs,
and manage collections of graphs on disk`,
	Version: "0.2.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)
}

// initSettings reads in the optional seqslice.yaml settings file.
func initSettings() {
	viper.SetConfigName("seqslice")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.seqslice")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			stderr.Fatalf("failed to read settings file: %v", err)
		}
	}
}
