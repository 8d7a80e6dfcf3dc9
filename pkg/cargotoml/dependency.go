package cargotoml

import "fmt"

// Dependency is one entry of a dependency set: either the simple form, a
// bare version-requirement string, or the detailed table form. Detail nil
// means the simple form.
type Dependency struct {
	Simple string
	Detail *DependencyDetail
}

// SimpleDep builds a simple version-requirement dependency.
func SimpleDep(req string) Dependency {
	return Dependency{Simple: req}
}

// DetailedDep builds a detailed dependency.
func DetailedDep(d DependencyDetail) Dependency {
	return Dependency{Detail: &d}
}

// DependencyDetail is the table form of a dependency declaration. The git
// fields (Git, Branch, Tag, Rev) are mutually informative but not mutually
// exclusive at the type level.
type DependencyDetail struct {
	Version         string   `toml:"version"`
	Registry        string   `toml:"registry"`
	RegistryIndex   string   `toml:"registry-index"`
	Path            string   `toml:"path"`
	Git             string   `toml:"git"`
	Branch          string   `toml:"branch"`
	Tag             string   `toml:"tag"`
	Rev             string   `toml:"rev"`
	Features        []string `toml:"features"`
	Optional        *bool    `toml:"optional"`
	Workspace       *bool    `toml:"workspace"`
	DefaultFeatures *bool    `toml:"default-features"`
	Package         string   `toml:"package"`
}

// Req returns the version requirement, defaulting to the wildcard "*" when
// a detailed dependency leaves it out.
func (d Dependency) Req() string {
	if d.Detail != nil {
		if d.Detail.Version == "" {
			return "*"
		}
		return d.Detail.Version
	}
	return d.Simple
}

// ReqFeatures returns the features the dependency is declared with.
func (d Dependency) ReqFeatures() []string {
	if d.Detail == nil {
		return nil
	}
	return d.Detail.Features
}

// IsOptional reports whether the dependency is declared optional.
func (d Dependency) IsOptional() bool {
	return d.Detail != nil && d.Detail.Optional != nil && *d.Detail.Optional
}

// RenamedPackage returns the real package name when the dependency renames
// it, and "" when the dependency name is the package name.
func (d Dependency) RenamedPackage() string {
	if d.Detail == nil {
		return ""
	}
	return d.Detail.Package
}

// Git returns the git URL of the dependency, if any.
func (d Dependency) Git() string {
	if d.Detail == nil {
		return ""
	}
	return d.Detail.Git
}

// IsCratesIO reports whether the dependency is resolvable from the default
// public registry by name and version alone: true only when none of path,
// registry, registry-index, git, tag, branch and rev are set.
func (d Dependency) IsCratesIO() bool {
	if d.Detail == nil {
		return true
	}
	det := d.Detail
	return det.Path == "" && det.Registry == "" && det.RegistryIndex == "" &&
		det.Git == "" && det.Tag == "" && det.Branch == "" && det.Rev == ""
}

func (d *Dependency) unmarshalRaw(raw any) error {
	switch v := raw.(type) {
	case string:
		d.Simple = v
		d.Detail = nil
		return nil
	case map[string]any:
		detail := new(DependencyDetail)
		if err := decodeShape(v, detail, true); err != nil {
			return err
		}
		d.Simple = ""
		d.Detail = detail
		return nil
	default:
		return fmt.Errorf("dependency must be a version string or a table, got %T", raw)
	}
}

func (d Dependency) rawValue() any {
	if d.Detail != nil {
		return d.Detail.tree()
	}
	return d.Simple
}

func (d *DependencyDetail) tree() map[string]any {
	t := map[string]any{}
	setString(t, "version", d.Version)
	setString(t, "registry", d.Registry)
	setString(t, "registry-index", d.RegistryIndex)
	setString(t, "path", d.Path)
	setString(t, "git", d.Git)
	setString(t, "branch", d.Branch)
	setString(t, "tag", d.Tag)
	setString(t, "rev", d.Rev)
	if d.Features != nil {
		t["features"] = d.Features
	}
	setBool(t, "optional", d.Optional)
	setBool(t, "workspace", d.Workspace)
	setBool(t, "default-features", d.DefaultFeatures)
	setString(t, "package", d.Package)
	return t
}
