package classmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-generator/internal/diagnostic"
)

func mustParse(t *testing.T, src string) *Model {
	t.Helper()

	m, err := Parse([]byte(src))
	require.NoError(t, err)

	return m
}

func findCode(d *diagnostic.Diagnostics, code string) (diagnostic.Diagnostic, bool) {
	for _, diag := range d.All() {
		if diag.Code == code {
			return diag, true
		}
	}

	return diagnostic.Diagnostic{}, false
}

func TestValidate_ValidModel(t *testing.T) {
	m := mustParse(t, `<M>
		<Class name="R" isRoot="true"/>
		<Class name="C" isRoot="false"><Attribute name="x" type="int"/></Class>
		<Aggregation source="C" target="R" sourceMultiplicity="0..5"/>
	</M>`)

	res := Validate(m)
	assert.True(t, res.IsValid())
	assert.Empty(t, res.All())
}

func TestValidate_NilModel(t *testing.T) {
	res := Validate(nil)
	assert.False(t, res.IsValid())
}

func TestValidate_Roots(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		code     string
		severity diagnostic.DiagnosticSeverity
	}{
		{
			name:     "no root",
			src:      `<M><Class name="A" isRoot="false"/></M>`,
			code:     CodeNoRoot,
			severity: diagnostic.DiagnosticError,
		},
		{
			name:     "two roots",
			src:      `<M><Class name="A" isRoot="true"/><Class name="B" isRoot="true"/></M>`,
			code:     CodeMultipleRoots,
			severity: diagnostic.DiagnosticWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(mustParse(t, tt.src))

			diag, ok := findCode(res, tt.code)
			require.True(t, ok, "codes: %v", res.Codes())
			assert.Equal(t, tt.severity, diag.Severity)
		})
	}
}

func TestValidate_UnknownTargetSuggestion(t *testing.T) {
	m := mustParse(t, `<M>
		<Class name="Board" isRoot="true"/>
		<Class name="Sensor" isRoot="false"/>
		<Aggregation source="Sensor" target="Bord" sourceMultiplicity="1"/>
	</M>`)

	res := Validate(m)

	diag, ok := findCode(res, CodeUnknownAggregationTarget)
	require.True(t, ok)
	assert.Equal(t, diagnostic.DiagnosticWarning, diag.Severity)
	assert.Equal(t, "Bord", diag.Element)
	assert.Equal(t, []string{"Board"}, diag.Suggestions)

	// Sensor never got attached, so it is an orphan too.
	orphan, ok := findCode(res, CodeOrphanClass)
	require.True(t, ok)
	assert.Equal(t, "Sensor", orphan.Class)
}

func TestValidate_UnknownChild(t *testing.T) {
	m := mustParse(t, `<M>
		<Class name="Board" isRoot="true"/>
		<Aggregation source="Sensr" target="Board" sourceMultiplicity="1"/>
	</M>`)

	res := Validate(m)
	assert.False(t, res.IsValid())

	diag, ok := findCode(res, CodeUnknownChildClass)
	require.True(t, ok)
	assert.Equal(t, "Board", diag.Class)
	assert.Equal(t, "Sensr", diag.Element)
}

func TestValidate_Cycle(t *testing.T) {
	m := mustParse(t, `<M>
		<Class name="A" isRoot="true"/>
		<Class name="B" isRoot="false"/>
		<Aggregation source="B" target="A" sourceMultiplicity="1"/>
		<Aggregation source="A" target="B" sourceMultiplicity="1"/>
	</M>`)

	res := Validate(m)

	_, ok := findCode(res, CodeContainmentCycle)
	assert.True(t, ok)
	assert.False(t, res.IsValid())
}

func TestValidate_EmptyNames(t *testing.T) {
	m := mustParse(t, `<M><Class isRoot="true"><Attribute type="int"/></Class></M>`)

	res := Validate(m)

	_, ok := findCode(res, CodeEmptyClassName)
	assert.True(t, ok)

	_, ok = findCode(res, CodeEmptyAttributeName)
	assert.True(t, ok)
	assert.True(t, res.IsValid())
}
