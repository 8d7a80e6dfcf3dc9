package cargotoml

import (
	"errors"
	"io/fs"
	"slices"
	"strings"
)

// sourceExt is the extension the auto-scan rule recognizes as a crate
// source file.
const sourceExt = ".rs"

// CompleteFromPath completes the manifest from the package directory dir
// (the parent of the Cargo.toml file).
func (m *Manifest[M]) CompleteFromPath(dir string) error {
	return m.CompleteFromFS(NewDirFS(dir))
}

// CompleteFromFS fills in the product declarations and the build-script
// reference the manifest format allows to be left implicit, using the
// directory conventions of cargo: src/lib.rs, src/main.rs, src/bin,
// examples, tests, benches and build.rs.
//
// It is a no-op without a [package] section and idempotent otherwise: a
// category the manifest (or an earlier call) declares explicitly is left
// alone. The one exception is an explicit [lib], whose required-features
// are cleared on every call because a library cannot be feature-gated.
//
// A not-found condition on a conventional directory is normalized to "no
// entries". Any other filesystem error aborts completion and is returned;
// mutations made up to that point stand.
func (m *Manifest[M]) CompleteFromFS(fsys Filesystem) error {
	pkg := m.Package
	if pkg == nil {
		return nil
	}

	src, err := namesIn(fsys, "src")
	if err != nil {
		return err
	}

	// Synthesized products never inherit an edition: they copy the
	// package's locally declared one or leave it unset.
	var edition *Edition
	if local, ok := pkg.LocalEdition(); ok {
		edition = &local
	}

	if m.Lib != nil {
		m.Lib.RequiredFeatures = nil
	} else if slices.Contains(src, "lib"+sourceExt) {
		lib := NewProduct()
		lib.Name = strings.ReplaceAll(pkg.Name, "-", "_")
		lib.Path = "src/lib" + sourceExt
		lib.Edition = copyEdition(edition)
		lib.CrateType = []string{"rlib"}
		m.Lib = &lib
	}

	if pkg.AutoBins() && m.Bin == nil {
		bins, err := autoScan(fsys, "src/bin", edition)
		if err != nil {
			return err
		}
		if slices.Contains(src, "main"+sourceExt) {
			bin := NewProduct()
			bin.Name = pkg.Name
			bin.Path = "src/main" + sourceExt
			bin.Edition = copyEdition(edition)
			bins = append(bins, bin)
		}
		m.Bin = &bins
	}
	if pkg.AutoExamples() && m.Example == nil {
		examples, err := autoScan(fsys, "examples", edition)
		if err != nil {
			return err
		}
		m.Example = &examples
	}
	if pkg.AutoTests() && m.Test == nil {
		tests, err := autoScan(fsys, "tests", edition)
		if err != nil {
			return err
		}
		m.Test = &tests
	}
	if pkg.AutoBenches() && m.Bench == nil {
		benches, err := autoScan(fsys, "benches", edition)
		if err != nil {
			return err
		}
		m.Bench = &benches
	}

	if pkg.Build == nil {
		root, err := namesIn(fsys, ".")
		if err != nil {
			return err
		}
		if slices.Contains(root, "build"+sourceExt) {
			build := StringValue("build" + sourceExt)
			pkg.Build = &build
		}
	}
	return nil
}

// autoScan applies the shared product-scan rule to dir: every *.rs entry
// becomes a product named by stripping the extension, and every
// subdirectory holding a main.rs becomes a product named after it. Entries
// that are neither are skipped. Product order follows the order the
// Filesystem returns entries in.
func autoScan(fsys Filesystem, dir string, edition *Edition) ([]Product, error) {
	out := []Product{}
	names, err := namesIn(fsys, dir)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		rel := dir + "/" + name
		if strings.HasSuffix(name, sourceExt) {
			p := NewProduct()
			p.Name = strings.TrimSuffix(name, sourceExt)
			p.Path = rel
			p.Edition = copyEdition(edition)
			out = append(out, p)
			continue
		}
		sub, err := fsys.FileNamesIn(rel)
		if err != nil {
			// Not a directory, or unreadable: skip the entry.
			continue
		}
		if slices.Contains(sub, "main"+sourceExt) {
			p := NewProduct()
			p.Name = name
			p.Path = rel + "/main" + sourceExt
			p.Edition = copyEdition(edition)
			out = append(out, p)
		}
	}
	return out, nil
}

// namesIn lists dir, normalizing not-found to an empty listing.
func namesIn(fsys Filesystem, dir string) ([]string, error) {
	names, err := fsys.FileNamesIn(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return names, nil
}

func copyEdition(e *Edition) *Edition {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}
