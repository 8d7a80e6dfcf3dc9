package cargotoml

// Value is the catch-all type for open-ended manifest tables such as
// [package.metadata]. Callers that know the shape of their metadata can bind
// a concrete type instead via ParseWithMetadata.
type Value = map[string]any

// DepsSet maps a dependency name, as written in the manifest, to its
// declaration. Keys are unique and order-irrelevant; serialization emits
// them sorted.
type DepsSet map[string]Dependency

// TargetDepsSet maps a target-platform expression (for example
// `cfg(windows)`) to the dependency sets that apply on it.
type TargetDepsSet map[string]Target

// FeatureSet maps a feature name to the features and optional dependencies
// it enables.
type FeatureSet map[string][]string

// PatchSet maps a source being patched (usually "crates-io") to replacement
// dependencies.
type PatchSet map[string]DepsSet

// Manifest is the top-level Cargo.toml structure, generic over the
// [package.metadata] payload type M.
//
// Normally exactly one of Package or Workspace is present, though both may
// coexist for a package that is also a workspace root. A legacy manifest
// lacking both is repaired by the parser into a package-only manifest.
//
// Bin, Test, Example and Bench are pointers to distinguish "never declared"
// (nil, completion may scan for them) from "explicitly empty" (a pointer to
// an empty list).
type Manifest[M any] struct {
	Package           *Package[M]   `toml:"package"`
	CargoFeatures     []string      `toml:"cargo-features"`
	Workspace         *Workspace    `toml:"workspace"`
	Dependencies      DepsSet       `toml:"dependencies"`
	DevDependencies   DepsSet       `toml:"dev-dependencies"`
	BuildDependencies DepsSet       `toml:"build-dependencies"`
	Target            TargetDepsSet `toml:"target"`
	Features          FeatureSet    `toml:"features"`
	Bin               *[]Product    `toml:"bin"`
	Bench             *[]Product    `toml:"bench"`
	Test              *[]Product    `toml:"test"`
	Example           *[]Product    `toml:"example"`
	Patch             PatchSet      `toml:"patch"`
	Lib               *Product      `toml:"lib"`
	Profile           *Profiles     `toml:"profile"`
	Badges            *Badges       `toml:"badges"`
}

// Package is the [package] identity record. Descriptive fields are wrapped
// in Inheritable because workspace members may defer them to the workspace
// root with `field.workspace = true`.
//
// The boolean auto* fields default to true and govern whether completion may
// synthesize the corresponding product category; they are pointers so an
// explicit `autobins = false` survives a round-trip. Use the accessor
// methods to read them with their defaults applied.
type Package[M any] struct {
	// Name is required and non-empty. Careful: some published names are
	// uppercase.
	Name          string                     `toml:"name"`
	Edition       *Inheritable[Edition]      `toml:"edition"`
	Version       Inheritable[string]        `toml:"version"`
	Build         *StringOrBool              `toml:"build"`
	Workspace     string                     `toml:"workspace"`
	Authors       *Inheritable[[]string]     `toml:"authors"`
	Links         string                     `toml:"links"`
	Description   *Inheritable[string]       `toml:"description"`
	Homepage      *Inheritable[string]       `toml:"homepage"`
	Documentation *Inheritable[string]       `toml:"documentation"`
	Readme        *Inheritable[StringOrBool] `toml:"readme"`
	Keywords      *Inheritable[[]string]     `toml:"keywords"`
	Categories    *Inheritable[[]string]     `toml:"categories"`
	License       *Inheritable[string]       `toml:"license"`
	LicenseFile   *Inheritable[string]       `toml:"license-file"`
	Repository    *Inheritable[string]       `toml:"repository"`
	Metadata      *M                         `toml:"metadata"`
	RustVersion   *Inheritable[string]       `toml:"rust-version"`
	Exclude       *Inheritable[[]string]     `toml:"exclude"`
	Include       *Inheritable[[]string]     `toml:"include"`
	DefaultRun    string                     `toml:"default-run"`
	Autobins      *bool                      `toml:"autobins"`
	Autoexamples  *bool                      `toml:"autoexamples"`
	Autotests     *bool                      `toml:"autotests"`
	Autobenches   *bool                      `toml:"autobenches"`
	Publish       *Inheritable[Publish]      `toml:"publish"`
	Resolver      *Resolver                  `toml:"resolver"`
}

// AutoBins reports whether completion may synthesize binaries (default true).
func (p *Package[M]) AutoBins() bool { return p.Autobins == nil || *p.Autobins }

// AutoExamples reports whether completion may synthesize examples (default true).
func (p *Package[M]) AutoExamples() bool { return p.Autoexamples == nil || *p.Autoexamples }

// AutoTests reports whether completion may synthesize tests (default true).
func (p *Package[M]) AutoTests() bool { return p.Autotests == nil || *p.Autotests }

// AutoBenches reports whether completion may synthesize benchmarks (default true).
func (p *Package[M]) AutoBenches() bool { return p.Autobenches == nil || *p.Autobenches }

// LocalEdition returns the package's edition only if it is declared locally,
// not inherited from a workspace.
func (p *Package[M]) LocalEdition() (Edition, bool) {
	if p.Edition == nil || p.Edition.Local == nil {
		return "", false
	}
	return *p.Edition.Local, true
}

// Workspace is the [workspace] section.
type Workspace struct {
	Members        []string          `toml:"members"`
	DefaultMembers []string          `toml:"default-members"`
	Exclude        []string          `toml:"exclude"`
	Resolver       *Resolver         `toml:"resolver"`
	Dependencies   DepsSet           `toml:"dependencies"`
	Package        *WorkspacePackage `toml:"package"`
}

// WorkspacePackage is the [workspace.package] table: the fields member
// packages may inherit by declaring `field.workspace = true`.
type WorkspacePackage struct {
	Edition       *Edition      `toml:"edition"`
	Version       string        `toml:"version"`
	Authors       []string      `toml:"authors"`
	Description   string        `toml:"description"`
	Homepage      string        `toml:"homepage"`
	Documentation string        `toml:"documentation"`
	Readme        *StringOrBool `toml:"readme"`
	Keywords      []string      `toml:"keywords"`
	Categories    []string      `toml:"categories"`
	License       string        `toml:"license"`
	LicenseFile   string        `toml:"license-file"`
	Publish       *Publish      `toml:"publish"`
	Exclude       []string      `toml:"exclude"`
	Include       []string      `toml:"include"`
	Repository    string        `toml:"repository"`
	RustVersion   string        `toml:"rust-version"`
}

// Target holds the dependency overrides for one target platform.
type Target struct {
	Dependencies      DepsSet `toml:"dependencies"`
	DevDependencies   DepsSet `toml:"dev-dependencies"`
	BuildDependencies DepsSet `toml:"build-dependencies"`
}

// Product is a single buildable unit: the library or one of bin, test,
// bench, example. Cargo calls these "targets"; the name Product avoids the
// clash with target platforms.
//
// The boolean flags are pointers so that a sparsely declared product and a
// synthesized one are indistinguishable: nil means "declared nothing
// explicit" and reads as the documented default through the accessor
// methods (test, doctest, bench, doc and harness default to true; plugin
// and proc-macro default to false).
type Product struct {
	// Path to the root source file, relative to the manifest.
	Path string `toml:"path"`
	// Name of the library or binary that will be generated. Defaults to the
	// package name with dashes replaced by underscores.
	Name             string   `toml:"name"`
	Test             *bool    `toml:"test"`
	Doctest          *bool    `toml:"doctest"`
	Bench            *bool    `toml:"bench"`
	Doc              *bool    `toml:"doc"`
	Plugin           *bool    `toml:"plugin"`
	ProcMacro        *bool    `toml:"proc-macro"`
	Harness          *bool    `toml:"harness"`
	Edition          *Edition `toml:"edition"`
	RequiredFeatures []string `toml:"required-features"`
	CrateType        []string `toml:"crate-type"`
}

// NewProduct is the single default-construction path for products: all flags
// at their documented defaults and the edition at the oldest supported one.
// Completion synthesizes every product through it.
func NewProduct() Product {
	e := Edition2015
	return Product{Edition: &e}
}

func (p *Product) IsTest() bool      { return p.Test == nil || *p.Test }
func (p *Product) IsDoctest() bool   { return p.Doctest == nil || *p.Doctest }
func (p *Product) IsBench() bool     { return p.Bench == nil || *p.Bench }
func (p *Product) IsDoc() bool       { return p.Doc == nil || *p.Doc }
func (p *Product) IsPlugin() bool    { return p.Plugin != nil && *p.Plugin }
func (p *Product) IsProcMacro() bool { return p.ProcMacro != nil && *p.ProcMacro }
func (p *Product) HasHarness() bool  { return p.Harness == nil || *p.Harness }

// Profiles is the [profile] section: the five built-in profiles plus any
// custom ones, which live under arbitrary names at the same level.
type Profiles struct {
	Release *Profile
	Dev     *Profile
	Test    *Profile
	Bench   *Profile
	Doc     *Profile
	Custom  map[string]Profile
}

// Profile holds the build-tuning knobs of one profile. OptLevel, Debug and
// LTO stay untyped because cargo accepts several scalar kinds for them
// (e.g. `opt-level = "s"` or `opt-level = 3`).
type Profile struct {
	OptLevel        any                `toml:"opt-level"`
	Debug           any                `toml:"debug"`
	Rpath           *bool              `toml:"rpath"`
	Inherits        string             `toml:"inherits"`
	LTO             any                `toml:"lto"`
	DebugAssertions *bool              `toml:"debug-assertions"`
	CodegenUnits    *uint16            `toml:"codegen-units"`
	Panic           string             `toml:"panic"`
	Incremental     *bool              `toml:"incremental"`
	OverflowChecks  *bool              `toml:"overflow-checks"`
	Package         map[string]Profile `toml:"package"`
	BuildOverride   *Profile           `toml:"build-override"`
}

// Badges is the [badges] section. Each badge record tolerates being
// malformed and falls back to absent instead of failing the whole parse;
// Maintenance falls back to its default status.
type Badges struct {
	Appveyor                      *Badge
	CircleCI                      *Badge
	Gitlab                        *Badge
	TravisCI                      *Badge
	Codecov                       *Badge
	Coveralls                     *Badge
	IsItMaintainedIssueResolution *Badge
	IsItMaintainedOpenIssues      *Badge
	Maintenance                   Maintenance
}

// Badge describes one CI or coverage service badge. Branch defaults to
// "master" when the manifest leaves it out.
type Badge struct {
	Repository  string `toml:"repository"`
	Branch      string `toml:"branch"`
	Service     string `toml:"service"`
	ID          string `toml:"id"`
	ProjectName string `toml:"project-name"`
}

// Maintenance is the crate's declared maintenance intention.
type Maintenance struct {
	Status MaintenanceStatus `toml:"status"`
}

// MaintenanceStatus has a fixed, closed vocabulary; anything else is
// rejected during decoding.
type MaintenanceStatus string

const (
	MaintenanceNone                 MaintenanceStatus = "none"
	MaintenanceActivelyDeveloped    MaintenanceStatus = "actively-developed"
	MaintenancePassivelyMaintained  MaintenanceStatus = "passively-maintained"
	MaintenanceAsIs                 MaintenanceStatus = "as-is"
	MaintenanceExperimental         MaintenanceStatus = "experimental"
	MaintenanceLookingForMaintainer MaintenanceStatus = "looking-for-maintainer"
	MaintenanceDeprecated           MaintenanceStatus = "deprecated"
)

// Edition is a Rust language edition.
type Edition string

const (
	// Edition2015 is the oldest supported edition and the default.
	Edition2015 Edition = "2015"
	Edition2018 Edition = "2018"
	Edition2021 Edition = "2021"
)

// Resolver selects the dependency-version resolution mode of a workspace.
type Resolver string

const (
	// ResolverV1 is the default.
	ResolverV1 Resolver = "1"
	ResolverV2 Resolver = "2"
)
