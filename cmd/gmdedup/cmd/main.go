// Package cmd implements the gmdedup command line tool.  gmdedup takes
// the raw hit list produced by a protein-to-genome aligner and keeps
// one gene model per genomic locus, dropping alternative ranks, partial
// re-alignments and overlapping paralog calls of the same exon
// structure.
package cmd

import (
	"log"

	"v.io/x/lib/cmdline"
)

// Run parses the command line and executes the selected subcommand.
func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "gmdedup",
			Short:    "Deduplicate protein-to-genome alignment hits",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdFilter(),
				newCmdStats(),
			},
		})
}
