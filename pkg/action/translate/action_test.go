package translate

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/haxedts/internal/parser"
)

// fixture is one txtar archive under testdata: input.xml, optional
// options.yaml, and either want.d.ts or error.
type fixture struct {
	opts    *parser.Options
	input   []byte
	want    string
	wantErr string
}

func loadFixture(t *testing.T, path string) fixture {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)

	fx := fixture{opts: parser.NewOptions()}
	for _, f := range ar.Files {
		switch f.Name {
		case "options.yaml":
			require.NoError(t, yaml.Unmarshal(f.Data, fx.opts))
		case "input.xml":
			fx.input = f.Data
		case "want.d.ts":
			fx.want = string(f.Data)
		case "error":
			fx.wantErr = strings.TrimSpace(string(f.Data))
		default:
			t.Fatalf("%s: unexpected file %q", path, f.Name)
		}
	}
	require.NotEmpty(t, fx.input, "%s: missing input.xml", path)
	fx.opts.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	return fx
}

func TestTranslateGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			t.Parallel()
			fx := loadFixture(t, file)

			res, err := Translate(bytes.NewReader(fx.input), fx.opts)
			if fx.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), fx.wantErr)
				require.Nil(t, res)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(fx.want, res.Text); diff != "" {
				t.Logf("got:\n%s", res.Text)
				t.Fatalf("Translate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTranslateResult(t *testing.T) {
	fx := loadFixture(t, "testdata/nape.txtar")
	res, err := Translate(bytes.NewReader(fx.input), fx.opts)
	require.NoError(t, err)
	require.Equal(t, 3, res.Classes)
	require.Equal(t, 4, res.Namespaces)
	require.Len(t, res.Diagnostics, 2)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	fx := loadFixture(t, "testdata/end_to_end.txtar")
	in := filepath.Join(dir, "dump.xml")
	require.NoError(t, os.WriteFile(in, fx.input, 0o644))

	fx.opts.Input = in
	fx.opts.Output = filepath.Join(dir, "out", "pkg.d.ts")
	res, err := Generate(fx.opts)
	require.NoError(t, err)
	require.Equal(t, fx.opts.Output, res.Output)

	got, err := os.ReadFile(fx.opts.Output)
	require.NoError(t, err)
	require.Equal(t, fx.want, string(got))

	entries, err := os.ReadDir(filepath.Dir(fx.opts.Output))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestGenerateFailureKeepsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	fx := loadFixture(t, "testdata/malformed.txtar")
	in := filepath.Join(dir, "dump.xml")
	out := filepath.Join(dir, "nape.d.ts")
	require.NoError(t, os.WriteFile(in, fx.input, 0o644))
	require.NoError(t, os.WriteFile(out, []byte("previous\n"), 0o644))

	fx.opts.Input = in
	fx.opts.Output = out
	_, err := Generate(fx.opts)
	require.Error(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "previous\n", string(got))
}

func TestGenerateRequiresPaths(t *testing.T) {
	_, err := Generate(parser.NewOptions())
	require.Error(t, err)

	_, err = Generate(&parser.Options{Input: filepath.Join(t.TempDir(), "missing.xml"), Output: "x.d.ts"})
	require.Error(t, err)
}
