package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"

	"github.com/michaelscutari/dutop/internal/pathutil"
	"github.com/michaelscutari/dutop/internal/probe"
	"github.com/michaelscutari/dutop/internal/scan"
)

func main() {
	dir := flag.StringP("dir", "d", ".", "Directory to scan")
	walkers := flag.StringSlice("walker", []string{string(probe.WalkerStack), string(probe.WalkerFast)}, "Walkers to compare")
	workers := flag.IntP("workers", "w", 0, "Concurrent child measurements (0 = one per CPU)")
	fastWorkers := flag.Int("fast-workers", 0, "fastwalk goroutines per child (0 = fastwalk default)")
	runs := flag.IntP("runs", "n", 3, "Runs per walker")
	xdev := flag.Bool("xdev", false, "Don't cross filesystem boundaries")
	flag.Parse()

	if *runs < 1 {
		fmt.Fprintln(os.Stderr, "runs must be at least 1")
		os.Exit(2)
	}

	root := pathutil.Absolute(*dir)
	fmt.Printf("dir=%s workers=%d fast-workers=%d runs=%d xdev=%t\n", root, *workers, *fastWorkers, *runs, *xdev)

	var reference uint64
	for i, name := range *walkers {
		walker, err := probe.ParseWalker(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		popts := probe.DefaultOptions().
			WithWalker(walker).
			WithFastWorkers(*fastWorkers).
			WithXdev(*xdev)
		scanner := scan.NewScanner(scan.DefaultOptions().WithWorkers(*workers).WithProbe(popts))

		var best, total time.Duration
		var size uint64
		var entries int
		for r := 0; r < *runs; r++ {
			start := time.Now()
			inv := scanner.Scan(root)
			d := time.Since(start)

			total += d
			if r == 0 || d < best {
				best = d
			}
			size = inv.TotalSize
			entries = inv.Len()
		}

		fmt.Printf("%-6s entries=%d total=%s best=%v avg=%v\n",
			walker, entries, humanize.Bytes(size), best, total/time.Duration(*runs))

		if i == 0 {
			reference = size
		} else if size != reference {
			fmt.Fprintf(os.Stderr, "warning: %s measured %s, first walker measured %s\n",
				walker, humanize.Bytes(size), humanize.Bytes(reference))
		}
	}
}
