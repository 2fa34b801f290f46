package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vuurlang/vuur/internal/filetest"
	"github.com/vuurlang/vuur/lang/scanner"
	"github.com/vuurlang/vuur/lang/token"
)

// TestScanIsIdempotent exercises spec §8's token-idempotence property
// ("scanning the same source twice yields the same token stream") over a
// small corpus of fixture programs, using internal/filetest.SourceFiles the
// way the teacher's own scanner tests enumerate a testdata directory.
func TestScanIsIdempotent(t *testing.T) {
	dir := filepath.Join("testdata", "in")
	for _, fi := range filetest.SourceFiles(t, dir, ".vuur") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, fi.Name()))
			require.NoError(t, err)

			first, errs1 := scanner.All(fi.Name(), string(src))
			second, errs2 := scanner.All(fi.Name(), string(src))

			require.Empty(t, errs1)
			require.Empty(t, errs2)
			require.Equal(t, first, second)

			require.NotEmpty(t, first)
			require.Equal(t, token.EOF, first[len(first)-1].Token)
		})
	}
}
