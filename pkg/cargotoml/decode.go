package cargotoml

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// rawUnmarshaler is implemented by every type whose wire form is a tagged
// union (or needs validation against a closed vocabulary). It receives the
// fully decoded raw TOML value: string, bool, int64, float64, []any or
// map[string]any.
type rawUnmarshaler interface {
	unmarshalRaw(raw any) error
}

// rawValuer is the serialization mirror: it reduces a typed value to the
// plain tree form the TOML encoder understands.
type rawValuer interface {
	rawValue() any
}

var rawUnmarshalerType = reflect.TypeOf((*rawUnmarshaler)(nil)).Elem()

// decodeShape maps a raw TOML value onto a typed destination. Field names
// follow the kebab-case `toml` tags; the historical underscore spellings are
// accepted as aliases on input. In strict mode unrecognized keys are
// rejected, with the offending key named in the error.
func decodeShape(raw any, out any, strict bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		TagName:     "toml",
		MatchName:   matchManifestKey,
		DecodeHook:  unionDecodeHook,
		ErrorUnused: strict,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// matchManifestKey treats the underscore spelling of a key as an alias for
// the canonical hyphenated form (dev_dependencies, proc_macro, ...).
func matchManifestKey(mapKey, fieldName string) bool {
	return strings.ReplaceAll(mapKey, "_", "-") == fieldName
}

// unionDecodeHook routes raw values into types that implement
// rawUnmarshaler. Pointer destinations are left alone; mapstructure
// allocates them and re-enters the hook with the element type.
func unionDecodeHook(from reflect.Value, to reflect.Value) (any, error) {
	if !from.IsValid() {
		return nil, nil
	}
	t := to.Type()
	if t.Kind() == reflect.Pointer || !reflect.PointerTo(t).Implements(rawUnmarshalerType) {
		return from.Interface(), nil
	}
	if from.Type() == t {
		return from.Interface(), nil
	}
	dst := reflect.New(t)
	if err := dst.Interface().(rawUnmarshaler).unmarshalRaw(from.Interface()); err != nil {
		return nil, err
	}
	return dst.Elem().Interface(), nil
}

// rawOf reduces v to its wire form when it knows one.
func rawOf(v any) any {
	if r, ok := v.(rawValuer); ok {
		return r.rawValue()
	}
	return v
}

func (p *Profiles) unmarshalRaw(raw any) error {
	m, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("profile section must be a table, got %T", raw)
	}
	for name, val := range m {
		prof := new(Profile)
		if err := decodeShape(val, prof, true); err != nil {
			return fmt.Errorf("profile.%s: %w", name, err)
		}
		switch name {
		case "release":
			p.Release = prof
		case "dev":
			p.Dev = prof
		case "test":
			p.Test = prof
		case "bench":
			p.Bench = prof
		case "doc":
			p.Doc = prof
		default:
			if p.Custom == nil {
				p.Custom = map[string]Profile{}
			}
			p.Custom[name] = *prof
		}
	}
	return nil
}

func (b *Badges) unmarshalRaw(raw any) error {
	m, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("badges section must be a table, got %T", raw)
	}
	b.Maintenance = Maintenance{Status: MaintenanceNone}
	for key, val := range m {
		switch strings.ReplaceAll(key, "_", "-") {
		case "appveyor":
			b.Appveyor = badgeOrAbsent(val)
		case "circle-ci":
			b.CircleCI = badgeOrAbsent(val)
		case "gitlab":
			b.Gitlab = badgeOrAbsent(val)
		case "travis-ci":
			b.TravisCI = badgeOrAbsent(val)
		case "codecov":
			b.Codecov = badgeOrAbsent(val)
		case "coveralls":
			b.Coveralls = badgeOrAbsent(val)
		case "is-it-maintained-issue-resolution":
			b.IsItMaintainedIssueResolution = badgeOrAbsent(val)
		case "is-it-maintained-open-issues":
			b.IsItMaintainedOpenIssues = badgeOrAbsent(val)
		case "maintenance":
			b.Maintenance = maintenanceOrDefault(val)
		default:
			return fmt.Errorf("badges: unknown key %q", key)
		}
	}
	return nil
}

// badgeOrAbsent decodes one badge record, tolerating malformed input by
// reporting the badge as absent.
func badgeOrAbsent(raw any) *Badge {
	badge := new(Badge)
	if err := decodeShape(raw, badge, true); err != nil {
		return nil
	}
	if badge.Repository == "" {
		return nil
	}
	if badge.Branch == "" {
		badge.Branch = "master"
	}
	return badge
}

// maintenanceOrDefault decodes the maintenance record, falling back to the
// default status when the record is malformed.
func maintenanceOrDefault(raw any) Maintenance {
	var m Maintenance
	if err := decodeShape(raw, &m, true); err != nil || m.Status == "" {
		return Maintenance{Status: MaintenanceNone}
	}
	return m
}
