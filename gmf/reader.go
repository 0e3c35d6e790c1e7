// Package gmf reads and writes GMF, the tabular gene-model format
// emitted by the protein-to-genome aligner.  One record per line, nine
// or ten tab-separated columns:
//
//	id  chrom  strand  rank  span_start  span_end  identity  aligned_len  exons  [note]
//
// Coordinates are 1-based and inclusive.  The exons column is a
// comma-separated list of start-end pairs ("1201-1299,1405-1500"); a
// bare "-" marks a record with no coding segments.  Lines starting
// with '#' are headers and pass through the filter untouched.
package gmf

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/genomelab/gmdedup/dedup"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// ReadOpts controls parse-time filtering of aligner records.
type ReadOpts struct {
	// MinIdentity drops records whose percent identity is below it.
	MinIdentity float64
	// MinScore drops records whose match score is below it.
	MinScore float64
}

// ReadStats counts what happened to the records of one input.
type ReadStats struct {
	// Records is the number of data lines read.
	Records int
	// NoExons is the number of records dropped for lacking coding
	// segments.
	NoExons int
	// Duplicates is the number of records suppressed because an earlier
	// record carried the identical gene model.
	Duplicates int
	// Filtered is the number of records dropped by MinIdentity or
	// MinScore.
	Filtered int
	// Hits is the number of records kept.
	Hits int
}

// Read parses aligner records from in.  name is used in error messages
// only.  Records with no coding segments are dropped and counted, as
// are records below the opts thresholds and records whose gene model
// (chromosome, strand, span, exon chain) was already seen.
func Read(in io.Reader, name string, opts ReadOpts) ([]*dedup.Hit, ReadStats, error) {
	var (
		hits  []*dedup.Hit
		stats ReadStats
		seen  = make(map[dedup.Digest]struct{})
	)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		stats.Records++
		h, err := parseHit(line)
		if err != nil {
			return nil, stats, errors.Wrapf(err, "%s:%d", name, lineno)
		}
		if len(h.Exons) == 0 {
			stats.NoExons++
			continue
		}
		if h.Identity < opts.MinIdentity || h.MatchScore() < opts.MinScore {
			stats.Filtered++
			continue
		}
		d := h.Digest()
		if _, ok := seen[d]; ok {
			stats.Duplicates++
			continue
		}
		seen[d] = struct{}{}
		hits = append(hits, h)
	}
	if err := sc.Err(); err != nil {
		return nil, stats, errors.Wrap(err, name)
	}
	stats.Hits = len(hits)
	return hits, stats, nil
}

// ReadFile reads aligner records from path.  Files ending in ".gz" are
// decompressed on the fly.
func ReadFile(ctx context.Context, path string, opts ReadOpts) (hits []*dedup.Hit, stats ReadStats, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	var r io.Reader = in.Reader(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, ReadStats{}, errors.Wrap(err, path)
		}
		defer func() {
			if e := gz.Close(); e != nil && err == nil {
				err = e
			}
		}()
		r = gz
	}
	hits, stats, err = Read(r, path, opts)
	if err == nil {
		log.Debug.Printf("%s: %d records, %d hits", path, stats.Records, stats.Hits)
	}
	return hits, stats, err
}

func parseHit(line string) (*dedup.Hit, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, errors.Errorf("%d columns, want at least 9", len(fields))
	}
	h := &dedup.Hit{ID: fields[0], Chrom: fields[1]}
	if h.ID == "" {
		return nil, errors.New("empty id")
	}
	switch fields[2] {
	case "+":
		h.Strand = dedup.Forward
	case "-":
		h.Strand = dedup.Reverse
	default:
		return nil, errors.Errorf("bad strand %q", fields[2])
	}
	var err error
	if h.Rank, err = strconv.Atoi(fields[3]); err != nil {
		return nil, errors.Errorf("bad rank %q", fields[3])
	}
	if h.SpanStart, err = strconv.Atoi(fields[4]); err != nil {
		return nil, errors.Errorf("bad span start %q", fields[4])
	}
	if h.SpanEnd, err = strconv.Atoi(fields[5]); err != nil {
		return nil, errors.Errorf("bad span end %q", fields[5])
	}
	if h.SpanStart > h.SpanEnd {
		return nil, errors.Errorf("span start %d past end %d", h.SpanStart, h.SpanEnd)
	}
	if h.Identity, err = strconv.ParseFloat(fields[6], 64); err != nil {
		return nil, errors.Errorf("bad identity %q", fields[6])
	}
	if h.Identity < 0 || h.Identity > 100 {
		return nil, errors.Errorf("identity %v outside [0, 100]", h.Identity)
	}
	if h.AlignedLen, err = strconv.Atoi(fields[7]); err != nil {
		return nil, errors.Errorf("bad aligned length %q", fields[7])
	}
	if h.Exons, err = parseExons(fields[8], h.SpanStart, h.SpanEnd); err != nil {
		return nil, err
	}
	if len(fields) > 9 {
		h.Note = fields[9]
	}
	return h, nil
}

func parseExons(s string, spanStart, spanEnd int) ([]dedup.Exon, error) {
	if s == "" || s == "-" {
		return nil, nil
	}
	var exons []dedup.Exon
	for _, tok := range strings.Split(s, ",") {
		dash := strings.IndexByte(tok, '-')
		if dash <= 0 {
			return nil, errors.Errorf("bad exon %q", tok)
		}
		start, err := strconv.Atoi(tok[:dash])
		if err != nil {
			return nil, errors.Errorf("bad exon %q", tok)
		}
		end, err := strconv.Atoi(tok[dash+1:])
		if err != nil {
			return nil, errors.Errorf("bad exon %q", tok)
		}
		if start > end {
			return nil, errors.Errorf("exon %q start past end", tok)
		}
		if start < spanStart || end > spanEnd {
			return nil, errors.Errorf("exon %q outside span %d-%d", tok, spanStart, spanEnd)
		}
		exons = append(exons, dedup.Exon{Start: start, End: end})
	}
	return exons, nil
}
