// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// ExtractConfig is settings for connecting-subgraph extraction.
type ExtractConfig struct {
	// the default maximum walk length between the two positions
	MaxLen int64 `mapstructure:"max-len"`

	// whether the bases at the positions themselves are kept
	IncludeTerminals bool `mapstructure:"include-terminals"`

	// whether cycles through the terminal nodes are preserved
	DetectCycles bool `mapstructure:"detect-cycles"`
}

// ServerConfig is settings for the HTTP server.
type ServerConfig struct {
	// the address the extraction API listens on
	Addr string `mapstructure:"addr"`
}

// SetConfig is settings for the on-disk graph collection.
type SetConfig struct {
	// path to the sqlite index of the collection
	Index string `mapstructure:"index"`
}

// Config is the root-level settings struct and is a mix of settings
// available in seqslice.yaml and those available from the command line.
type Config struct {
	// extraction settings
	Extract ExtractConfig `mapstructure:"extract"`

	// HTTP server settings
	Server ServerConfig `mapstructure:"server"`

	// collection settings
	Set SetConfig `mapstructure:"set"`
}

func init() {
	viper.SetDefault("extract.max-len", int64(10000))
	viper.SetDefault("extract.include-terminals", false)
	viper.SetDefault("extract.detect-cycles", false)
	viper.SetDefault("server.addr", ":8723")
	viper.SetDefault("set.index", "seqslice.db")
}

// New returns a new Config struct populated by Viper settings (either
// from the local seqslice.yaml) and/or command line arguments.
func New() Config {
	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	return c
}
