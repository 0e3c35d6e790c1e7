package gmf

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/genomelab/gmdedup/dedup"
	"github.com/grailbio/base/vcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiltered(t *testing.T) {
	ctx := vcontext.Background()
	dir, err := ioutil.TempDir("", "gmf")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	// q1.r1 and q1.r2 are duplicate models of one locus; the dedup run
	// keeps the higher-scoring q1.r1. q2.r1 is alone on chr2.
	inPath := filepath.Join(dir, "hits.gmf")
	require.NoError(t, ioutil.WriteFile(inPath, []byte(testInput()), 0644))
	hits, _, err := ReadFile(ctx, inPath, ReadOpts{})
	require.NoError(t, err)
	accepted, _ := dedup.Dedup(hits, dedup.DefaultOpts)
	require.Equal(t, []string{"q1.r1", "q2.r1"}, accepted.IDs())

	outPath := filepath.Join(dir, "filtered.gmf")
	n, err := WriteFiltered(ctx, inPath, outPath, accepted)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	out, err := ioutil.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	// Header and original record bytes pass through, input order kept.
	assert.Equal(t, testHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "q1.r1\t"))
	assert.Contains(t, lines[1], "gene=alpha")
	assert.True(t, strings.HasPrefix(lines[2], "q2.r1\t"))
}

func TestWriteFilteredRepeatedRecord(t *testing.T) {
	ctx := vcontext.Background()
	dir, err := ioutil.TempDir("", "gmf")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	// The aligner emitted the q2.r1 record twice, byte for byte.  The
	// reader suppresses the repeat, and the filtered output must carry
	// the record once, not once per input line.
	inPath := filepath.Join(dir, "hits.gmf")
	require.NoError(t, ioutil.WriteFile(inPath,
		[]byte(testInput()+record("q2.r1", "chr2", "+", "1", "5000", "5200", "60", "50", "5000-5200")+"\n"),
		0644))
	hits, rstats, err := ReadFile(ctx, inPath, ReadOpts{})
	require.NoError(t, err)
	require.Equal(t, 1, rstats.Duplicates)
	accepted, _ := dedup.Dedup(hits, dedup.DefaultOpts)

	outPath := filepath.Join(dir, "filtered.gmf")
	n, err := WriteFiltered(ctx, inPath, outPath, accepted)
	require.NoError(t, err)
	assert.Equal(t, accepted.Len(), n)

	out, err := ioutil.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "q1.r1\t"))
	assert.True(t, strings.HasPrefix(lines[2], "q2.r1\t"))
}

func TestWriteSummary(t *testing.T) {
	ctx := vcontext.Background()
	dir, err := ioutil.TempDir("", "gmf")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	hits, _, err := Read(strings.NewReader(testInput()), "test", ReadOpts{})
	require.NoError(t, err)
	accepted, _ := dedup.Dedup(hits, dedup.DefaultOpts)

	path := filepath.Join(dir, "summary.tsv")
	require.NoError(t, WriteSummary(ctx, path, accepted))
	out, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#id\t"))
	assert.Equal(t,
		strings.Join([]string{"q1.r1", "chr1", "+", "1", "1000", "2000", "95.5", "300", "286.5"}, "\t"),
		lines[1])
	assert.Equal(t,
		strings.Join([]string{"q2.r1", "chr2", "+", "1", "5000", "5200", "60", "50", "30"}, "\t"),
		lines[2])
}
