package textfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortName(t *testing.T) {
	tests := []struct {
		identity string
		expected string
	}{
		{"textfilter.Markdown", "markdown"},
		{"plugins/textfilters/markdown", "markdown"},
		{"TextFilter::SmartyPants", "smartypants"},
		{"textfilter.MacroPre", "macropre"},
		{"a.b.c.Lightbox", "lightbox"},
	}

	for _, tt := range tests {
		t.Run(tt.identity, func(t *testing.T) {
			name, err := ShortName(newFunc(tt.identity, TypeOther, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestShortName_Unknown(t *testing.T) {
	_, err := ShortName(newFunc("Markdown", TypeOther, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownIdentity)
	assert.Contains(t, err.Error(), `"Markdown"`)
}

func TestComponentName(t *testing.T) {
	name, err := ComponentName(newFunc("textfilter.Markdown", TypeMarkup, nil))
	require.NoError(t, err)
	assert.Equal(t, "plugins/textfilters/markdown", name)

	_, err = ComponentName(newFunc("bad", TypeMarkup, nil))
	assert.ErrorIs(t, err, ErrUnknownIdentity)
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, TypeOther, TypeOf(newFunc("x.A", "", nil)))
	assert.Equal(t, TypeMarkup, TypeOf(newFunc("x.A", TypeMarkup, nil)))
}

func TestType_IsMacro(t *testing.T) {
	assert.True(t, TypeMacroPre.IsMacro())
	assert.True(t, TypeMacroPost.IsMacro())
	assert.False(t, TypeMarkup.IsMacro())
	assert.False(t, TypePostProcess.IsMacro())
	assert.False(t, TypeOther.IsMacro())
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  Type
		ok    bool
	}{
		{"macropre", TypeMacroPre, true},
		{"MacroPost", TypeMacroPost, true},
		{" markup ", TypeMarkup, true},
		{"PostProcess", TypePostProcess, true},
		{"other", TypeOther, true},
		{"macro", Type("macro"), false},
		{"", Type(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseType(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigValue(t *testing.T) {
	f := &Func{Meta: Descriptor{
		Identity: "x.Configured",
		DefaultConfig: Config{
			"size":    {Default: "medium", Description: "thumbnail size"},
			"enabled": {Default: true},
			"blank":   {},
		},
	}}

	tests := []struct {
		name     string
		params   map[string]any
		option   string
		expected any
	}{
		{"default when params nil", nil, "size", "medium"},
		{"param wins", map[string]any{"size": "large"}, "size", "large"},
		{"empty string falls back", map[string]any{"size": ""}, "size", "medium"},
		{"nil falls back", map[string]any{"size": nil}, "size", "medium"},
		{"false falls back", map[string]any{"enabled": false}, "enabled", true},
		{"non-string param wins", map[string]any{"size": 3}, "size", 3},
		{"declared option without default", nil, "blank", nil},
		{"undeclared option supplied", map[string]any{"extra": "x"}, "extra", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConfigValue(f, Params{FilterParams: tt.params}, tt.option)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConfigValue_MissingDefault(t *testing.T) {
	f := &Func{Meta: Descriptor{Identity: "x.Bare"}}

	_, err := ConfigValue(f, Params{}, "size")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDefaultConfig)
	assert.Contains(t, err.Error(), "size")

	_, err = ConfigValue(f, Params{FilterParams: map[string]any{"size": ""}}, "size")
	assert.ErrorIs(t, err, ErrMissingDefaultConfig)

	assert.Panics(t, func() { MustConfigValue(f, Params{}, "size") })
}

func TestConfigString(t *testing.T) {
	f := &Func{Meta: Descriptor{
		Identity:      "x.Configured",
		DefaultConfig: Config{"count": {Default: 5}, "none": {}},
	}}

	got, err := ConfigString(f, Params{}, "count")
	require.NoError(t, err)
	assert.Equal(t, "5", got)

	got, err = ConfigString(f, Params{}, "none")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	_, err = ConfigString(f, Params{}, "missing")
	assert.ErrorIs(t, err, ErrMissingDefaultConfig)
}

func TestFunc_NilFnPassesThrough(t *testing.T) {
	out, err := (&Func{Meta: Descriptor{Identity: "x.Noop"}}).Filtertext(Params{}, "same")
	require.NoError(t, err)
	assert.Equal(t, "same", out)
}

func TestMacro_UsesShortNameAndNamespace(t *testing.T) {
	m := &Macro{
		Meta: Descriptor{Identity: "textfilter.Greet", Type: TypeMacroPost},
		Expand: func(p Params, attrs Attributes, body string) (string, error) {
			return "hello " + attrs.Get("who", body), nil
		},
	}

	out, err := m.Filtertext(Params{}, `<macro:greet who="you"/> <ns:greet who="nobody"/>`)
	require.NoError(t, err)
	assert.Equal(t, `hello you <ns:greet who="nobody"/>`, out)

	out, err = m.Filtertext(Params{Namespace: "ns"}, `<ns:greet>world</ns:greet>`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestMacro_ReusesExpanderPerNamespace(t *testing.T) {
	m := &Macro{
		Meta:   Descriptor{Identity: "textfilter.Greet", Type: TypeMacroPost},
		Expand: func(Params, Attributes, string) (string, error) { return "hi", nil },
	}

	for i := 0; i < 2; i++ {
		out, err := m.Filtertext(Params{}, "<macro:greet/>")
		require.NoError(t, err)
		assert.Equal(t, "hi", out)
	}
	out, err := m.Filtertext(Params{Namespace: "ns"}, "<ns:greet/> <macro:greet/>")
	require.NoError(t, err)
	assert.Equal(t, "hi <macro:greet/>", out)

	assert.Same(t, m.expander("macro", "greet"), m.expander("macro", "greet"))
	assert.NotSame(t, m.expander("macro", "greet"), m.expander("ns", "greet"))
}

func TestMacro_UnknownIdentity(t *testing.T) {
	m := &Macro{Meta: Descriptor{Identity: "greet"}}
	_, err := m.Filtertext(Params{}, "text")
	assert.ErrorIs(t, err, ErrUnknownIdentity)
}

func TestMacro_MaxInput(t *testing.T) {
	m := &Macro{
		Meta:     Descriptor{Identity: "x.Tiny", Type: TypeMacroPre},
		Expand:   func(Params, Attributes, string) (string, error) { return "", nil },
		MaxInput: 4,
	}
	_, err := m.Filtertext(Params{}, "too long")
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestAttributes_Get(t *testing.T) {
	attrs := Attributes{"a": "1", "empty": ""}
	assert.Equal(t, "1", attrs.Get("a", "x"))
	assert.Equal(t, "", attrs.Get("empty", "x"))
	assert.Equal(t, "x", attrs.Get("missing", "x"))
}
