package gmf

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/genomelab/gmdedup/dedup"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

// WriteFiltered copies the records whose ids were accepted from the
// raw aligner output at inPath to outPath, preserving the original
// bytes and order of the kept lines.  Header lines pass through.  It
// returns the number of records written.
//
// The raw output is re-read rather than re-rendered so the filter
// never alters fields it does not understand.  Only the first record
// carrying an accepted id is written; repeats of a record the aligner
// emitted more than once stay suppressed in the output.
func WriteFiltered(ctx context.Context, inPath, outPath string, accepted *dedup.AcceptedSet) (n int, err error) {
	in, err := file.Open(ctx, inPath)
	if err != nil {
		return 0, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	var r io.Reader = in.Reader(ctx)
	if strings.HasSuffix(inPath, ".gz") {
		gz, gzErr := gzip.NewReader(r)
		if gzErr != nil {
			return 0, gzErr
		}
		defer func() {
			if e := gz.Close(); e != nil && err == nil {
				err = e
			}
		}()
		r = gz
	}

	out, err := file.Create(ctx, outPath)
	if err != nil {
		return 0, err
	}
	w := bufio.NewWriter(out.Writer(ctx))
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024*1024), 64*1024*1024)
	once := errors.Once{}
	written := make(map[string]struct{})
	for sc.Scan() {
		line := sc.Text()
		if line != "" && line[0] != '#' {
			id := line
			if tab := strings.IndexByte(line, '\t'); tab >= 0 {
				id = line[:tab]
			}
			if !accepted.Contains(id) {
				continue
			}
			if _, ok := written[id]; ok {
				continue
			}
			written[id] = struct{}{}
			n++
		}
		_, werr := w.WriteString(line)
		once.Set(werr)
		once.Set(w.WriteByte('\n'))
	}
	once.Set(sc.Err())
	once.Set(w.Flush())
	once.Set(out.Close(ctx))
	return n, once.Err()
}

// WriteSummary writes a TSV describing the accepted hits, one row per
// hit ordered by chromosome and span.
func WriteSummary(ctx context.Context, path string, accepted *dedup.AcceptedSet) (err error) {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	w := tsv.NewWriter(out.Writer(ctx))
	w.WriteString("#id\tchrom\tstrand\trank\tspan_start\tspan_end\tidentity\taligned_len\tmatch_score")
	if err = w.EndLine(); err != nil {
		return err
	}
	for _, h := range accepted.Hits() {
		w.WriteString(h.ID)
		w.WriteString(h.Chrom)
		w.WriteString(h.Strand.String())
		w.WriteString(strconv.Itoa(h.Rank))
		w.WriteUint32(uint32(h.SpanStart))
		w.WriteUint32(uint32(h.SpanEnd))
		w.WriteString(strconv.FormatFloat(h.Identity, 'g', -1, 64))
		w.WriteString(strconv.Itoa(h.AlignedLen))
		w.WriteString(strconv.FormatFloat(h.MatchScore(), 'g', -1, 64))
		if err = w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}
