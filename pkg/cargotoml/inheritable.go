package cargotoml

import "fmt"

// Inheritable is a manifest value that is either given locally or deferred
// to the workspace-level default. On the wire the inherited form is the
// literal table `{ workspace = true }`; deserializing `workspace = false`
// there is an error. Exactly one of Workspace and Local is set.
type Inheritable[T any] struct {
	Workspace bool
	Local     *T
}

// LocalValue wraps a locally declared value.
func LocalValue[T any](v T) Inheritable[T] {
	return Inheritable[T]{Local: &v}
}

// Inherited marks a value as inherited from the workspace.
func Inherited[T any]() Inheritable[T] {
	return Inheritable[T]{Workspace: true}
}

// Get returns the local value, if one is declared.
func (i Inheritable[T]) Get() (T, bool) {
	if i.Local == nil {
		var zero T
		return zero, false
	}
	return *i.Local, true
}

// IsInherited reports whether the value defers to the workspace.
func (i Inheritable[T]) IsInherited() bool { return i.Workspace }

func (i *Inheritable[T]) unmarshalRaw(raw any) error {
	if m, ok := raw.(map[string]any); ok {
		if w, present := m["workspace"]; present && len(m) == 1 {
			flag, ok := w.(bool)
			if !ok {
				return fmt.Errorf("workspace marker must be a boolean, got %T", w)
			}
			if !flag {
				return fmt.Errorf("workspace marker must be the literal true")
			}
			i.Workspace = true
			i.Local = nil
			return nil
		}
	}
	local := new(T)
	if err := decodeShape(raw, local, true); err != nil {
		return err
	}
	i.Workspace = false
	i.Local = local
	return nil
}

func (i Inheritable[T]) rawValue() any {
	if i.Workspace {
		return map[string]any{"workspace": true}
	}
	if i.Local == nil {
		return nil
	}
	return rawOf(*i.Local)
}

// Publish controls where a package may be published: a plain boolean flag,
// or a list of allowed registry names. A registry list is publishable only
// when non-empty, so an empty list is equivalent in effect to false; use
// Publishable for that comparison rather than structural equality.
type Publish struct {
	Flag       *bool
	Registries []string
}

// PublishFlag builds the boolean form.
func PublishFlag(allowed bool) Publish {
	return Publish{Flag: &allowed}
}

// PublishRegistries builds the registry-list form.
func PublishRegistries(names ...string) Publish {
	if names == nil {
		names = []string{}
	}
	return Publish{Registries: names}
}

// Publishable reduces the value to its boolean effect.
func (p Publish) Publishable() bool {
	if p.Flag != nil {
		return *p.Flag
	}
	return len(p.Registries) > 0
}

func (p *Publish) unmarshalRaw(raw any) error {
	switch v := raw.(type) {
	case bool:
		p.Flag = &v
		p.Registries = nil
		return nil
	case []any:
		names := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("publish registry name must be a string, got %T", e)
			}
			names = append(names, s)
		}
		p.Flag = nil
		p.Registries = names
		return nil
	default:
		return fmt.Errorf("publish must be a boolean or a list of registries, got %T", raw)
	}
}

func (p Publish) rawValue() any {
	if p.Flag != nil {
		return *p.Flag
	}
	if p.Registries == nil {
		return []string{}
	}
	return p.Registries
}

// StringOrBool is a value that the manifest format allows to be written as
// either a string or a boolean, such as `readme` and `package.build`.
// Exactly one of Str and Bool is set.
type StringOrBool struct {
	Str  *string
	Bool *bool
}

// StringValue builds the string form.
func StringValue(s string) StringOrBool {
	return StringOrBool{Str: &s}
}

// BoolValue builds the boolean form.
func BoolValue(b bool) StringOrBool {
	return StringOrBool{Bool: &b}
}

func (s *StringOrBool) unmarshalRaw(raw any) error {
	switch v := raw.(type) {
	case string:
		s.Str = &v
		s.Bool = nil
		return nil
	case bool:
		s.Bool = &v
		s.Str = nil
		return nil
	default:
		return fmt.Errorf("expected a string or a boolean, got %T", raw)
	}
}

func (s StringOrBool) rawValue() any {
	if s.Str != nil {
		return *s.Str
	}
	if s.Bool != nil {
		return *s.Bool
	}
	return nil
}

func (e *Edition) unmarshalRaw(raw any) error {
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("edition must be a string, got %T", raw)
	}
	switch Edition(s) {
	case Edition2015, Edition2018, Edition2021:
		*e = Edition(s)
		return nil
	default:
		return fmt.Errorf("unknown edition %q", s)
	}
}

func (e Edition) rawValue() any { return string(e) }

func (r *Resolver) unmarshalRaw(raw any) error {
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("resolver must be a string, got %T", raw)
	}
	switch Resolver(s) {
	case ResolverV1, ResolverV2:
		*r = Resolver(s)
		return nil
	default:
		return fmt.Errorf("unknown resolver %q", s)
	}
}

func (r Resolver) rawValue() any { return string(r) }

func (m *MaintenanceStatus) unmarshalRaw(raw any) error {
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("maintenance status must be a string, got %T", raw)
	}
	switch MaintenanceStatus(s) {
	case MaintenanceNone, MaintenanceActivelyDeveloped, MaintenancePassivelyMaintained,
		MaintenanceAsIs, MaintenanceExperimental, MaintenanceLookingForMaintainer,
		MaintenanceDeprecated:
		*m = MaintenanceStatus(s)
		return nil
	default:
		return fmt.Errorf("unknown maintenance status %q", s)
	}
}
