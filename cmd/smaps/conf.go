package main

import (
	"log"

	"github.com/BurntSushi/toml"
)

// Conf is the optional TOML configuration for the smaps tool. It holds the
// standing filter a user applies to every run; the command-line flags pick
// the target process or file.
type Conf struct {
	// Match keeps only mappings whose path contains one of these
	// substrings. Empty means keep everything.
	Match []string `toml:"match"`
	// MinRSSKB hides regions with a resident set below this many kB.
	MinRSSKB uint64 `toml:"min_rss_kb"`
	Debug    bool   `toml:"debug"`
}

func parseConf(path string) *Conf {
	conf := &Conf{}
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		log.Fatalf("Error decoding %s: %s\n", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Fatalf("Unrecognized keys in %s: %v\n", path, undecoded)
	}
	return conf
}
