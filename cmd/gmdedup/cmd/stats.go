package cmd

import (
	"fmt"

	"github.com/genomelab/gmdedup/dedup"
	"github.com/genomelab/gmdedup/gmf"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"
)

func newCmdStats() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "stats",
		Short:    "Report what a filter run would keep, without writing output",
		ArgsName: "input",
	}
	overlapRatio := cmd.Flags.Float64("overlap-ratio", dedup.DefaultOpts.OverlapRatio, "Fraction of either hit's coding length that must be shared for two hits to count as the same locus.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("stats takes one input path, but got %v", argv)
		}
		return runStats(env, argv[0], *overlapRatio)
	})
	return cmd
}

func runStats(env *cmdline.Env, inPath string, overlapRatio float64) error {
	ctx := vcontext.Background()
	hits, rstats, err := gmf.ReadFile(ctx, inPath, gmf.ReadOpts{})
	if err != nil {
		return err
	}
	_, dstats := dedup.Dedup(hits, dedup.Opts{OverlapRatio: overlapRatio})
	fmt.Fprintf(env.Stdout, "records\t%d\n", rstats.Records)
	fmt.Fprintf(env.Stdout, "no_exons\t%d\n", rstats.NoExons)
	fmt.Fprintf(env.Stdout, "duplicate_records\t%d\n", rstats.Duplicates)
	fmt.Fprintf(env.Stdout, "hits\t%d\n", dstats.Hits)
	fmt.Fprintf(env.Stdout, "chromosomes\t%d\n", dstats.Chromosomes)
	fmt.Fprintf(env.Stdout, "footprint_groups\t%d\n", dstats.Groups)
	fmt.Fprintf(env.Stdout, "loci\t%d\n", dstats.Loci)
	fmt.Fprintf(env.Stdout, "dropped\t%d\n", dstats.Dropped)
	return nil
}
