// smaps prints the memory mappings of a process with their usage details, as
// reported by /proc/[pid]/smaps.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	proc "github.com/cespare/goproc"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/cespare/smaps"
	"github.com/cespare/smaps/internal/llog"
)

var (
	pid        = flag.Int("pid", 0, "Process to inspect (0 means this process)")
	file       = flag.String("f", "", "Parse this maps/smaps file instead of a live process")
	configFile = flag.String("conf", "", "Optional TOML configuration file")
	match      = flag.String("filter", "", "Only show mappings whose path contains this substring")
	total      = flag.Bool("total", false, "Print a totals row")
	sysinfo    = flag.Bool("sys", false, "Print system-wide memory info first")
	debug      = flag.Bool("debug", false, "Verbose output")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	conf := &Conf{}
	if *configFile != "" {
		conf = parseConf(*configFile)
	}
	logger := llog.NewLogger(log.New(os.Stderr, "", 0), *debug || conf.Debug)

	if *sysinfo {
		if err := printSysMem(); err != nil {
			log.Fatal(err)
		}
	}

	regions, err := readRegions(conf)
	if err != nil {
		log.Fatal(err)
	}
	printRegions(regions, conf, logger)
}

func readRegions(conf *Conf) ([]smaps.Region, error) {
	path := *file
	if path == "" {
		p := *pid
		if p == 0 {
			p = os.Getpid()
		}
		path = fmt.Sprintf("/proc/%d/smaps", p)
	}

	patterns := conf.Match
	if *match != "" {
		patterns = append(patterns, *match)
	}
	var keep func(*smaps.Mapping) bool
	if len(patterns) > 0 {
		keep = func(m *smaps.Mapping) bool {
			for _, p := range patterns {
				if strings.Contains(m.Path, p) {
					return true
				}
			}
			return false
		}
	}

	regions, err := smaps.ReadFilter(path, keep)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return regions, nil
}

func printRegions(regions []smaps.Region, conf *Conf, logger *llog.Logger) {
	var totalRSS, totalPSS, totalSwap uint64
	shown := 0
	for _, r := range regions {
		totalRSS += r.Usage.Rss
		totalPSS += r.Usage.Pss
		totalSwap += r.Usage.Swap
		if r.Usage.Rss < conf.MinRSSKB<<10 {
			logger.Debugf("hiding %s (rss below threshold)", r.Mapping)
			continue
		}
		shown++
		fmt.Printf("%012x-%012x %s %10s %10s %10s %s\n",
			r.Mapping.Start, r.Mapping.End, r.Mapping.Perms,
			humanize.IBytes(r.Usage.Rss), humanize.IBytes(r.Usage.Pss),
			humanize.IBytes(r.Usage.Swap), r.Mapping.Path)
	}
	logger.Debugf("%d of %d regions shown", shown, len(regions))
	if *total {
		fmt.Printf("total: rss %s, pss %s, swap %s over %d regions\n",
			humanize.IBytes(totalRSS), humanize.IBytes(totalPSS),
			humanize.IBytes(totalSwap), len(regions))
	}
}

// printSysMem gives system-wide context for the per-process numbers.
func printSysMem() error {
	info, err := proc.MemInfo()
	if err != nil {
		return errors.Wrap(err, "reading /proc/meminfo")
	}
	fmt.Printf("system: total %s, free %s, available %s\n",
		humanize.IBytes(info["MemTotal"]),
		humanize.IBytes(info["MemFree"]),
		humanize.IBytes(info["MemAvailable"]))
	return nil
}
