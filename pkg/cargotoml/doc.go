// Package cargotoml models the structured metadata of a Cargo.toml package
// manifest and reconstructs the parts of it that the format allows to be left
// implicit from the package's on-disk layout.
//
// # Parsing
//
// Parse a manifest already loaded as bytes:
//
//	m, err := cargotoml.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Load reads the file, parses it, and then runs completion anchored at the
// file's parent directory, so implicit [lib], [[bin]], [[test]] and similar
// declarations are filled in from disk:
//
//	m, err := cargotoml.Load("vendor/serde/Cargo.toml")
//
// The [package.metadata] table defaults to an untyped Value; callers that
// know its shape can bind their own type instead:
//
//	type Meta struct {
//	    Docs struct{ Features []string `toml:"features"` } `toml:"docs"`
//	}
//	m, err := cargotoml.ParseWithMetadata[Meta](data)
//
// # Completion
//
// Completion consumes a Filesystem, the minimal directory-listing capability
// the engine depends on. DirFS adapts a real (or afero in-memory) directory
// tree; GitFS lists a committed tree straight from a git repository. Any
// implementation works, which keeps the engine independent of storage:
//
//	err := m.CompleteFromFS(cargotoml.NewDirFS("/path/to/crate"))
//
// Completion mutates the manifest at most once and is idempotent: fields the
// manifest declares explicitly are never overwritten.
//
// # Error Handling
//
// Failures are programmatically distinguishable by kind:
//   - *SyntaxError: the document could not be parsed, or parsed into the
//     wrong shape; wraps the underlying TOML error with position context
//   - *EncodingError: the input bytes are not valid UTF-8
//   - file reads and directory listings surface their I/O errors as-is
//
// A not-found condition on one of the conventional directories during
// completion is not an error; it is normalized to "no entries".
package cargotoml
