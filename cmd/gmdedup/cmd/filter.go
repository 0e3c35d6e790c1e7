package cmd

import (
	"fmt"

	"github.com/genomelab/gmdedup/dedup"
	"github.com/genomelab/gmdedup/gmf"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"
)

type filterFlags struct {
	summaryPath  *string
	minIdentity  *float64
	minScore     *float64
	overlapRatio *float64
	parallelism  *int
}

func newCmdFilter() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "filter",
		Short:    "Keep one gene model per locus",
		Long:     `
Filter reads aligner output (plain or gzipped GMF), clusters hits whose
coding structures cover the same locus, and rewrites the input with only
the best-scoring hit of each cluster.  Kept records preserve their
original bytes and order.`,
		ArgsName: "input output",
	}
	flags := filterFlags{
		summaryPath:  cmd.Flags.String("summary", "", "Also write a TSV summary of the accepted hits to this path."),
		minIdentity:  cmd.Flags.Float64("min-identity", 0, "Drop records below this percent identity before clustering."),
		minScore:     cmd.Flags.Float64("min-score", 0, "Drop records below this match score before clustering."),
		overlapRatio: cmd.Flags.Float64("overlap-ratio", dedup.DefaultOpts.OverlapRatio, "Fraction of either hit's coding length that must be shared for two hits to count as the same locus."),
		parallelism:  cmd.Flags.Int("parallelism", 0, "Max chromosomes processed concurrently. 0 means the number of CPUs."),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("filter takes input and output paths, but got %v", argv)
		}
		return runFilter(flags, argv[0], argv[1])
	})
	return cmd
}

func runFilter(flags filterFlags, inPath, outPath string) error {
	ctx := vcontext.Background()
	hits, rstats, err := gmf.ReadFile(ctx, inPath, gmf.ReadOpts{
		MinIdentity: *flags.minIdentity,
		MinScore:    *flags.minScore,
	})
	if err != nil {
		return err
	}
	log.Printf("%s: %+v", inPath, rstats)

	accepted, dstats := dedup.Dedup(hits, dedup.Opts{
		OverlapRatio: *flags.overlapRatio,
		Parallelism:  *flags.parallelism,
	})
	log.Printf("dedup: %+v", dstats)

	n, err := gmf.WriteFiltered(ctx, inPath, outPath, accepted)
	if err != nil {
		return err
	}
	log.Printf("Wrote %d records to %s", n, outPath)
	if *flags.summaryPath != "" {
		if err := gmf.WriteSummary(ctx, *flags.summaryPath, accepted); err != nil {
			return err
		}
		log.Printf("Wrote summary to %s", *flags.summaryPath)
	}
	return nil
}
