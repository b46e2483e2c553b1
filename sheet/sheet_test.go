package sheet

import (
	"bytes"
	"log"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/animseq/keyframe"
)

func TestParseRule(t *testing.T) {
	rule, err := ParseRule("@keyframes RSI-abc123def { 0% {opacity: 0} 100% {opacity: 1}}")
	require.NoError(t, err)
	assert.Equal(t, "RSI-abc123def", rule.Name)

	for _, text := range []string{
		"",
		".box { color: red }",
		"@keyframes { 0% {} }",
		"@keyframes 9lives { 0% {} }",
		"@keyframes fade { 0% {opacity: 0}",
		"@keyframes fade { 0% {opacity: 0}}}",
		"@keyframes fade { } extra",
	} {
		_, err := ParseRule(text)
		assert.ErrorIs(t, err, ErrMalformedRule, "text %q", text)
	}
}

func TestSheetInsertDelete(t *testing.T) {
	s := NewSheet(Tag, 2)
	require.NoError(t, s.InsertRule("@keyframes a {}", 0))
	require.NoError(t, s.InsertRule("@keyframes b {}", 0))
	assert.Equal(t, []Rule{{"b", "@keyframes b {}"}, {"a", "@keyframes a {}"}}, s.Rules())

	assert.ErrorIs(t, s.InsertRule("@keyframes c {}", 2), ErrSheetFull)
	assert.ErrorIs(t, s.InsertRule("@keyframes c {}", 5), ErrIndexOutOfRange)

	require.NoError(t, s.DeleteRule(0))
	assert.Equal(t, 0, s.IndexOf("a"))
	assert.Equal(t, -1, s.IndexOf("b"))
	assert.ErrorIs(t, s.DeleteRule(3), ErrIndexOutOfRange)
	assert.Equal(t, "@keyframes a {}", s.String())
}

func TestRegistrySameContentTwice(t *testing.T) {
	r := NewRegistry()
	frames := []keyframe.Keyframe{keyframe.Raw("opacity: 0"), keyframe.Raw("opacity: 1")}

	first := keyframe.NewDefinition(frames)
	second := keyframe.NewDefinition(frames)
	require.NotEqual(t, first.Name, second.Name)

	sheet1, index1 := r.Register(first.Name, first.Text)
	sheet2, index2 := r.Register(second.Name, second.Text)

	assert.Same(t, sheet1, sheet2, "registrations share one sheet")
	assert.Equal(t, Tag, sheet1.Tag())
	assert.Equal(t, 0, index1)
	assert.Equal(t, 1, index2)

	r.Unregister(sheet1, first.Name)
	assert.Equal(t, -1, sheet1.IndexOf(first.Name))
	assert.Equal(t, 0, sheet1.IndexOf(second.Name))

	r.Unregister(sheet1, first.Name)
	r.Unregister(sheet1, "RSI-missing00")
	r.Unregister(nil, second.Name)
	assert.Equal(t, 1, sheet1.Len())
}

func TestRegistryLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	r := NewRegistry(WithLogger(log.New(&buf, "", 0)), WithLimit(1), WithMetrics(reg))

	assert.Nil(t, r.Sheet())

	s, index := r.Register("bad", "@keyframes bad { 0% {")
	require.NotNil(t, s)
	assert.Equal(t, 0, index)
	assert.Equal(t, 0, s.Len())
	assert.Contains(t, buf.String(), "error inserting rule bad")

	_, index = r.Register("ok", "@keyframes ok { 0% {opacity: 0}}")
	assert.Equal(t, 0, index)

	_, index = r.Register("full", "@keyframes full {}")
	assert.Equal(t, 1, index)
	assert.Contains(t, buf.String(), ErrSheetFull.Error())

	_, _ = r.Register("other", "@keyframes mismatch {}")

	assert.Equal(t, 3.0, testutil.ToFloat64(r.metrics.failures))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.rules))

	r.Unregister(s, "ok")
	assert.Equal(t, 0.0, testutil.ToFloat64(r.metrics.rules))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metrics.removedRules))
}

func TestDefaultIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
