package cargotoml

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/crateinfo/crateinfo-go/pkg/cargotoml/mocks"
)

func memFS(t *testing.T, paths ...string) Filesystem {
	t.Helper()
	mem := afero.NewMemMapFs()
	for _, p := range paths {
		require.NoError(t, afero.WriteFile(mem, p, []byte("// stub\n"), 0o644))
	}
	return NewAferoFS(mem)
}

func parseManifest(t *testing.T, doc string) *Manifest[Value] {
	t.Helper()
	m, err := Parse([]byte(doc))
	require.NoError(t, err)
	return m
}

func TestCompleteFromFS_SynthesizesLib(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "my-lib"
version = "0.1.0"
edition = "2018"
`)

	require.NoError(t, m.CompleteFromFS(memFS(t, "src/lib.rs")))

	require.NotNil(t, m.Lib)
	assert.Equal(t, "my_lib", m.Lib.Name)
	assert.Equal(t, "src/lib.rs", m.Lib.Path)
	assert.Equal(t, []string{"rlib"}, m.Lib.CrateType)
	require.NotNil(t, m.Lib.Edition)
	assert.Equal(t, Edition2018, *m.Lib.Edition)
	assert.True(t, m.Lib.IsTest())
	assert.True(t, m.Lib.IsDoctest())

	// src/bin and the other conventional dirs were scanned and found empty.
	require.NotNil(t, m.Bin)
	assert.Empty(t, *m.Bin)
	require.NotNil(t, m.Example)
	assert.Empty(t, *m.Example)
}

func TestCompleteFromFS_BinScan(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "multi-bin"
version = "0.1.0"
edition = "2021"
`)

	fsys := memFS(t,
		"src/main.rs",
		"src/bin/tool.rs",
		"src/bin/helper/main.rs",
		"src/bin/notes.txt",
	)
	require.NoError(t, m.CompleteFromFS(fsys))

	require.NotNil(t, m.Bin)
	bins := *m.Bin
	require.Len(t, bins, 3)

	// DirFS lists entries sorted, and src/main.rs is appended last.
	assert.Equal(t, "helper", bins[0].Name)
	assert.Equal(t, "src/bin/helper/main.rs", bins[0].Path)
	assert.Equal(t, "tool", bins[1].Name)
	assert.Equal(t, "src/bin/tool.rs", bins[1].Path)
	assert.Equal(t, "multi-bin", bins[2].Name)
	assert.Equal(t, "src/main.rs", bins[2].Path)

	for _, bin := range bins {
		require.NotNil(t, bin.Edition)
		assert.Equal(t, Edition2021, *bin.Edition)
	}
	assert.Nil(t, m.Lib)
}

func TestCompleteFromFS_ExamplesTestsBenches(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "kitchen-sink"
version = "0.1.0"
`)

	fsys := memFS(t,
		"examples/demo.rs",
		"examples/data.json",
		"tests/integration.rs",
		"tests/fixtures/input.rs",
		"benches/speed/main.rs",
	)
	require.NoError(t, m.CompleteFromFS(fsys))

	require.NotNil(t, m.Example)
	require.Len(t, *m.Example, 1)
	assert.Equal(t, "demo", (*m.Example)[0].Name)
	assert.Equal(t, "examples/demo.rs", (*m.Example)[0].Path)
	assert.Nil(t, (*m.Example)[0].Edition)

	// tests/fixtures has no main.rs, so only the top-level file counts.
	require.NotNil(t, m.Test)
	require.Len(t, *m.Test, 1)
	assert.Equal(t, "integration", (*m.Test)[0].Name)

	require.NotNil(t, m.Bench)
	require.Len(t, *m.Bench, 1)
	assert.Equal(t, "speed", (*m.Bench)[0].Name)
	assert.Equal(t, "benches/speed/main.rs", (*m.Bench)[0].Path)
}

func TestCompleteFromFS_AutoFlagsDisableScan(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "manual"
version = "0.1.0"
autobins = false
autotests = false
`)

	fsys := memFS(t, "src/bin/tool.rs", "tests/integration.rs", "examples/demo.rs")
	require.NoError(t, m.CompleteFromFS(fsys))

	assert.Nil(t, m.Bin)
	assert.Nil(t, m.Test)
	require.NotNil(t, m.Example)
	require.Len(t, *m.Example, 1)
}

func TestCompleteFromFS_ExplicitProductsUntouched(t *testing.T) {
	m := parseManifest(t, `
bin = []

[package]
name = "explicit"
version = "0.1.0"

[[test]]
name = "only-this"
path = "tests/only_this.rs"
`)

	fsys := memFS(t, "src/main.rs", "src/bin/tool.rs", "tests/other.rs")
	require.NoError(t, m.CompleteFromFS(fsys))

	require.NotNil(t, m.Bin)
	assert.Empty(t, *m.Bin)
	require.NotNil(t, m.Test)
	require.Len(t, *m.Test, 1)
	assert.Equal(t, "only-this", (*m.Test)[0].Name)
}

func TestCompleteFromFS_ExplicitLibRequiredFeaturesCleared(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "gated"
version = "0.1.0"

[lib]
path = "src/custom.rs"
required-features = ["nope"]
`)

	require.NoError(t, m.CompleteFromFS(memFS(t, "src/custom.rs")))

	require.NotNil(t, m.Lib)
	assert.Equal(t, "src/custom.rs", m.Lib.Path)
	assert.Nil(t, m.Lib.RequiredFeatures)
}

func TestCompleteFromFS_MissingSrcIsNotAnError(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "empty"
version = "0.1.0"
`)

	require.NoError(t, m.CompleteFromFS(memFS(t)))

	assert.Nil(t, m.Lib)
	require.NotNil(t, m.Bin)
	assert.Empty(t, *m.Bin)
	assert.Nil(t, m.Package.Build)
}

func TestCompleteFromFS_BuildScript(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "scripted"
version = "0.1.0"
`)

	require.NoError(t, m.CompleteFromFS(memFS(t, "build.rs", "src/lib.rs")))

	require.NotNil(t, m.Package.Build)
	require.NotNil(t, m.Package.Build.Str)
	assert.Equal(t, "build.rs", *m.Package.Build.Str)
}

func TestCompleteFromFS_ExplicitBuildFlagUntouched(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "no-script"
version = "0.1.0"
build = false
`)

	require.NoError(t, m.CompleteFromFS(memFS(t, "build.rs")))

	require.NotNil(t, m.Package.Build)
	require.NotNil(t, m.Package.Build.Bool)
	assert.False(t, *m.Package.Build.Bool)
}

func TestCompleteFromFS_Idempotent(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "stable"
version = "0.1.0"
edition = "2021"
`)

	fsys := memFS(t, "src/lib.rs", "src/main.rs", "examples/demo.rs", "build.rs")
	require.NoError(t, m.CompleteFromFS(fsys))

	first, err := m.MarshalTOML()
	require.NoError(t, err)

	require.NoError(t, m.CompleteFromFS(fsys))
	second, err := m.MarshalTOML()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestCompleteFromFS_NoPackageIsNoOp(t *testing.T) {
	m := parseManifest(t, `
[workspace]
members = ["a"]
`)

	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFilesystem(ctrl)

	require.NoError(t, m.CompleteFromFS(fsys))
}

func TestCompleteFromFS_SrcListingErrorPropagates(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "broken-disk"
version = "0.1.0"
`)

	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFilesystem(ctrl)
	diskErr := errors.New("disk failure")
	fsys.EXPECT().FileNamesIn("src").Return(nil, diskErr)

	err := m.CompleteFromFS(fsys)
	assert.ErrorIs(t, err, diskErr)
}

func TestCompleteFromFS_ScanErrorPropagates(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "broken-disk"
version = "0.1.0"
`)

	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFilesystem(ctrl)
	diskErr := errors.New("disk failure")
	fsys.EXPECT().FileNamesIn("src").Return([]string{"main.rs"}, nil)
	fsys.EXPECT().FileNamesIn("src/bin").Return(nil, diskErr)

	err := m.CompleteFromFS(fsys)
	assert.ErrorIs(t, err, diskErr)
}

func TestCompleteFromFS_NotFoundIsNormalized(t *testing.T) {
	m := parseManifest(t, `
[package]
name = "sparse"
version = "0.1.0"
`)

	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFilesystem(ctrl)
	notFound := func(dir string) ([]string, error) {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrNotExist}
	}
	fsys.EXPECT().FileNamesIn(gomock.Any()).DoAndReturn(notFound).AnyTimes()

	require.NoError(t, m.CompleteFromFS(fsys))
	require.NotNil(t, m.Bin)
	assert.Empty(t, *m.Bin)
}
