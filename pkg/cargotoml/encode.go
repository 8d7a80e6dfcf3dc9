package cargotoml

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// MarshalTOML serializes the manifest back to TOML. The output is canonical:
// kebab-case keys, sorted tables, absent optional sections omitted rather
// than emitted empty. A document produced here round-trips through Parse.
func (m *Manifest[M]) MarshalTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m.Tree()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Tree returns the manifest as its canonical nested key-value form: the
// same shape MarshalTOML encodes, usable for re-emission in other formats.
func (m *Manifest[M]) Tree() map[string]any {
	t := map[string]any{}
	if m.Package != nil {
		t["package"] = m.Package.tree()
	}
	if m.CargoFeatures != nil {
		t["cargo-features"] = m.CargoFeatures
	}
	if m.Workspace != nil {
		t["workspace"] = m.Workspace.tree()
	}
	if m.Dependencies != nil {
		t["dependencies"] = m.Dependencies.tree()
	}
	if m.DevDependencies != nil {
		t["dev-dependencies"] = m.DevDependencies.tree()
	}
	if m.BuildDependencies != nil {
		t["build-dependencies"] = m.BuildDependencies.tree()
	}
	if m.Target != nil {
		targets := map[string]any{}
		for expr, target := range m.Target {
			targets[expr] = target.tree()
		}
		t["target"] = targets
	}
	if m.Features != nil {
		t["features"] = map[string][]string(m.Features)
	}
	if m.Bin != nil {
		t["bin"] = productsTree(*m.Bin)
	}
	if m.Bench != nil {
		t["bench"] = productsTree(*m.Bench)
	}
	if m.Test != nil {
		t["test"] = productsTree(*m.Test)
	}
	if m.Example != nil {
		t["example"] = productsTree(*m.Example)
	}
	if m.Patch != nil {
		patches := map[string]any{}
		for source, deps := range m.Patch {
			patches[source] = deps.tree()
		}
		t["patch"] = patches
	}
	if m.Lib != nil {
		t["lib"] = m.Lib.tree()
	}
	if m.Profile != nil {
		t["profile"] = m.Profile.tree()
	}
	if m.Badges != nil {
		t["badges"] = m.Badges.tree()
	}
	return t
}

func (p *Package[M]) tree() map[string]any {
	t := map[string]any{}
	t["name"] = p.Name
	setInheritable(t, "edition", p.Edition)
	if v := p.Version.rawValue(); v != nil {
		t["version"] = v
	}
	if p.Build != nil {
		t["build"] = p.Build.rawValue()
	}
	setString(t, "workspace", p.Workspace)
	setInheritable(t, "authors", p.Authors)
	setString(t, "links", p.Links)
	setInheritable(t, "description", p.Description)
	setInheritable(t, "homepage", p.Homepage)
	setInheritable(t, "documentation", p.Documentation)
	setInheritable(t, "readme", p.Readme)
	setInheritable(t, "keywords", p.Keywords)
	setInheritable(t, "categories", p.Categories)
	setInheritable(t, "license", p.License)
	setInheritable(t, "license-file", p.LicenseFile)
	setInheritable(t, "repository", p.Repository)
	if p.Metadata != nil {
		t["metadata"] = *p.Metadata
	}
	setInheritable(t, "rust-version", p.RustVersion)
	setInheritable(t, "exclude", p.Exclude)
	setInheritable(t, "include", p.Include)
	setString(t, "default-run", p.DefaultRun)
	setBool(t, "autobins", p.Autobins)
	setBool(t, "autoexamples", p.Autoexamples)
	setBool(t, "autotests", p.Autotests)
	setBool(t, "autobenches", p.Autobenches)
	setInheritable(t, "publish", p.Publish)
	if p.Resolver != nil {
		t["resolver"] = string(*p.Resolver)
	}
	return t
}

func (w *Workspace) tree() map[string]any {
	t := map[string]any{}
	if w.Members != nil {
		t["members"] = w.Members
	}
	if w.DefaultMembers != nil {
		t["default-members"] = w.DefaultMembers
	}
	if w.Exclude != nil {
		t["exclude"] = w.Exclude
	}
	if w.Resolver != nil {
		t["resolver"] = string(*w.Resolver)
	}
	if w.Dependencies != nil {
		t["dependencies"] = w.Dependencies.tree()
	}
	if w.Package != nil {
		t["package"] = w.Package.tree()
	}
	return t
}

func (wp *WorkspacePackage) tree() map[string]any {
	t := map[string]any{}
	if wp.Edition != nil {
		t["edition"] = string(*wp.Edition)
	}
	setString(t, "version", wp.Version)
	if wp.Authors != nil {
		t["authors"] = wp.Authors
	}
	setString(t, "description", wp.Description)
	setString(t, "homepage", wp.Homepage)
	setString(t, "documentation", wp.Documentation)
	if wp.Readme != nil {
		t["readme"] = wp.Readme.rawValue()
	}
	if wp.Keywords != nil {
		t["keywords"] = wp.Keywords
	}
	if wp.Categories != nil {
		t["categories"] = wp.Categories
	}
	setString(t, "license", wp.License)
	setString(t, "license-file", wp.LicenseFile)
	if wp.Publish != nil {
		t["publish"] = wp.Publish.rawValue()
	}
	if wp.Exclude != nil {
		t["exclude"] = wp.Exclude
	}
	if wp.Include != nil {
		t["include"] = wp.Include
	}
	setString(t, "repository", wp.Repository)
	setString(t, "rust-version", wp.RustVersion)
	return t
}

func (d DepsSet) tree() map[string]any {
	t := map[string]any{}
	for name, dep := range d {
		t[name] = dep.rawValue()
	}
	return t
}

func (tg *Target) tree() map[string]any {
	t := map[string]any{}
	if tg.Dependencies != nil {
		t["dependencies"] = tg.Dependencies.tree()
	}
	if tg.DevDependencies != nil {
		t["dev-dependencies"] = tg.DevDependencies.tree()
	}
	if tg.BuildDependencies != nil {
		t["build-dependencies"] = tg.BuildDependencies.tree()
	}
	return t
}

func productsTree(products []Product) []map[string]any {
	out := make([]map[string]any, 0, len(products))
	for i := range products {
		out = append(out, products[i].tree())
	}
	return out
}

func (p *Product) tree() map[string]any {
	t := map[string]any{}
	setString(t, "path", p.Path)
	setString(t, "name", p.Name)
	setBool(t, "test", p.Test)
	setBool(t, "doctest", p.Doctest)
	setBool(t, "bench", p.Bench)
	setBool(t, "doc", p.Doc)
	setBool(t, "plugin", p.Plugin)
	setBool(t, "proc-macro", p.ProcMacro)
	setBool(t, "harness", p.Harness)
	if p.Edition != nil {
		t["edition"] = string(*p.Edition)
	}
	if p.RequiredFeatures != nil {
		t["required-features"] = p.RequiredFeatures
	}
	if p.CrateType != nil {
		t["crate-type"] = p.CrateType
	}
	return t
}

func (p *Profiles) tree() map[string]any {
	t := map[string]any{}
	if p.Release != nil {
		t["release"] = p.Release.tree()
	}
	if p.Dev != nil {
		t["dev"] = p.Dev.tree()
	}
	if p.Test != nil {
		t["test"] = p.Test.tree()
	}
	if p.Bench != nil {
		t["bench"] = p.Bench.tree()
	}
	if p.Doc != nil {
		t["doc"] = p.Doc.tree()
	}
	for name, prof := range p.Custom {
		t[name] = prof.tree()
	}
	return t
}

func (p *Profile) tree() map[string]any {
	t := map[string]any{}
	if p.OptLevel != nil {
		t["opt-level"] = p.OptLevel
	}
	if p.Debug != nil {
		t["debug"] = p.Debug
	}
	setBool(t, "rpath", p.Rpath)
	setString(t, "inherits", p.Inherits)
	if p.LTO != nil {
		t["lto"] = p.LTO
	}
	setBool(t, "debug-assertions", p.DebugAssertions)
	if p.CodegenUnits != nil {
		t["codegen-units"] = int64(*p.CodegenUnits)
	}
	setString(t, "panic", p.Panic)
	setBool(t, "incremental", p.Incremental)
	setBool(t, "overflow-checks", p.OverflowChecks)
	if p.Package != nil {
		overrides := map[string]any{}
		for spec := range p.Package {
			prof := p.Package[spec]
			overrides[spec] = prof.tree()
		}
		t["package"] = overrides
	}
	if p.BuildOverride != nil {
		t["build-override"] = p.BuildOverride.tree()
	}
	return t
}

func (b *Badges) tree() map[string]any {
	t := map[string]any{}
	setBadge(t, "appveyor", b.Appveyor)
	setBadge(t, "circle-ci", b.CircleCI)
	setBadge(t, "gitlab", b.Gitlab)
	setBadge(t, "travis-ci", b.TravisCI)
	setBadge(t, "codecov", b.Codecov)
	setBadge(t, "coveralls", b.Coveralls)
	setBadge(t, "is-it-maintained-issue-resolution", b.IsItMaintainedIssueResolution)
	setBadge(t, "is-it-maintained-open-issues", b.IsItMaintainedOpenIssues)
	if b.Maintenance.Status != "" {
		t["maintenance"] = map[string]any{"status": string(b.Maintenance.Status)}
	}
	return t
}

func (b *Badge) tree() map[string]any {
	t := map[string]any{}
	t["repository"] = b.Repository
	setString(t, "branch", b.Branch)
	setString(t, "service", b.Service)
	setString(t, "id", b.ID)
	setString(t, "project-name", b.ProjectName)
	return t
}

func setString(t map[string]any, key, v string) {
	if v != "" {
		t[key] = v
	}
}

func setBool(t map[string]any, key string, v *bool) {
	if v != nil {
		t[key] = *v
	}
}

func setBadge(t map[string]any, key string, b *Badge) {
	if b != nil {
		t[key] = b.tree()
	}
}

func setInheritable[T any](t map[string]any, key string, v *Inheritable[T]) {
	if v == nil {
		return
	}
	if raw := v.rawValue(); raw != nil {
		t[key] = raw
	}
}
