package cargotoml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInheritable_Accessors(t *testing.T) {
	local := LocalValue("1.2.3")
	v, ok := local.Get()
	assert.True(t, ok)
	assert.Equal(t, "1.2.3", v)
	assert.False(t, local.IsInherited())

	inherited := Inherited[string]()
	_, ok = inherited.Get()
	assert.False(t, ok)
	assert.True(t, inherited.IsInherited())
}

func TestPublish_Publishable(t *testing.T) {
	tests := []struct {
		name string
		in   Publish
		want bool
	}{
		{"flag true", PublishFlag(true), true},
		{"flag false", PublishFlag(false), false},
		{"registries", PublishRegistries("internal"), true},
		{"empty registry list", PublishRegistries(), false},
		{"zero value", Publish{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Publishable())
		})
	}
}

func TestPublish_ParseForms(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		publishable bool
	}{
		{"boolean false", `publish = false`, false},
		{"boolean true", `publish = true`, true},
		{"registry list", `publish = ["internal", "mirror"]`, true},
		{"empty list equals false", `publish = []`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte("[package]\nname = \"p\"\nversion = \"0.1.0\"\n" + tt.doc))
			require.NoError(t, err)
			require.NotNil(t, m.Package.Publish)
			p, ok := m.Package.Publish.Get()
			require.True(t, ok)
			assert.Equal(t, tt.publishable, p.Publishable())
		})
	}
}

func TestPublish_RejectsMixedList(t *testing.T) {
	m, err := Parse([]byte("[package]\nname = \"p\"\nversion = \"0.1.0\"\npublish = [\"ok\", 3]"))
	assert.Nil(t, m)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestStringOrBool_ParseForms(t *testing.T) {
	m, err := Parse([]byte("[package]\nname = \"p\"\nversion = \"0.1.0\"\nreadme = false"))
	require.NoError(t, err)
	require.NotNil(t, m.Package.Readme)
	readme, ok := m.Package.Readme.Get()
	require.True(t, ok)
	require.NotNil(t, readme.Bool)
	assert.False(t, *readme.Bool)
	assert.Nil(t, readme.Str)

	m, err = Parse([]byte("[package]\nname = \"p\"\nversion = \"0.1.0\"\nreadme = \"GUIDE.md\""))
	require.NoError(t, err)
	readme, ok = m.Package.Readme.Get()
	require.True(t, ok)
	require.NotNil(t, readme.Str)
	assert.Equal(t, "GUIDE.md", *readme.Str)
}

func TestEdition_Vocabulary(t *testing.T) {
	for _, edition := range []string{"2015", "2018", "2021"} {
		m, err := Parse([]byte("[package]\nname = \"p\"\nversion = \"0.1.0\"\nedition = \"" + edition + "\""))
		require.NoError(t, err)
		got, ok := m.Package.LocalEdition()
		require.True(t, ok)
		assert.Equal(t, Edition(edition), got)
	}

	m, err := Parse([]byte("[package]\nname = \"p\"\nversion = \"0.1.0\"\nedition = \"2024\""))
	assert.Nil(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2024")
}

func TestResolver_Vocabulary(t *testing.T) {
	m, err := Parse([]byte("[package]\nname = \"p\"\nversion = \"0.1.0\"\nresolver = \"3\""))
	assert.Nil(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolver")
}
