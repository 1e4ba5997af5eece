package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sot23 = `
package "SOT23-${suffix}"
unit mm

frame lead {
	set w = 0.6mm
	set h = 0.7mm
	lo: vec @(-w/2, -h/2)
	hi: vec @(w/2, h/2)
	pad "$num" lo hi
}

table
	{ suffix, gap }
	{ "A", 2.3mm }
	{ "B", 2.5mm }

loop n = 0, 2
set num = n + 1
p: vec @(n * 0.95mm, gap/2)
frame lead p
%iprint num
`

func writeDef(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sot23.fpd")
	require.NoError(t, os.WriteFile(path, []byte(sot23), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	outPath, packageName = "", ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInstCommand(t *testing.T) {
	out, err := run(t, "inst", writeDef(t))
	require.NoError(t, err)

	assert.Contains(t, out, "(common)")
	assert.Contains(t, out, "SOT23-A")
	assert.Contains(t, out, "SOT23-B")
	assert.Contains(t, out, "Size:")
	assert.Contains(t, out, "num = 3")
}

func TestExportKiCadToStdout(t *testing.T) {
	out, err := run(t, "export", "kicad", "--package", "SOT23-B", writeDef(t))
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "(footprint "))
	assert.Contains(t, out, `(footprint "SOT23-B"`)
	assert.Equal(t, 3, strings.Count(out, "(pad "))
}

func TestExportKiCadToDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lib.pretty")
	_, err := run(t, "export", "kicad", "-o", dir, writeDef(t))
	require.NoError(t, err)

	for _, name := range []string{"SOT23-A.kicad_mod", "SOT23-B.kicad_mod"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(string(data), "(footprint"), name)
	}
}

func TestExportPCBToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sot23.pcb")
	_, err := run(t, "export", "pcb", "-o", path, writeDef(t))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "Element["))
	assert.Equal(t, 6, strings.Count(string(data), "Pad["))
}

func TestExportUnknownPackage(t *testing.T) {
	_, err := run(t, "export", "gnuplot", "--package", "nope", writeDef(t))
	assert.ErrorContains(t, err, "no such package")
}

func TestMissingFile(t *testing.T) {
	_, err := run(t, "inst", filepath.Join(t.TempDir(), "missing.fpd"))
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "SO_8_1.27.kicad_mod", fileName("SO/8 1.27"))
}
