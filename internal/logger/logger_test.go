package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithLevel(WARN))

	l.Debug("not this")
	l.Info("not this either")
	l.Warn("but this")
	l.Error("and this")

	out := buf.String()
	assert.NotContains(t, out, "not this")
	assert.Contains(t, out, "but this")
	assert.Contains(t, out, "and this")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel(" WARNING "))
	assert.Equal(t, ERROR, ParseLevel("ERROR"))
	assert.Equal(t, INFO, ParseLevel("garbage"))
}

func TestPrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf)).WithPrefix("scheduler").WithField("card_id", "abc")

	l.Info("interval computed: %d days", 6)

	out := buf.String()
	assert.Contains(t, out, "[scheduler]")
	assert.Contains(t, out, "interval computed: 6 days")
	assert.Contains(t, out, "card_id=abc")
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(WithOutput(&buf))
	_ = parent.WithField("child_only", true)

	parent.Info("parent message")
	assert.NotContains(t, buf.String(), "child_only")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf)).WithPrefix("request")

	ctx := NewContext(context.Background(), l)
	FromContext(ctx).Info("handled")
	assert.Contains(t, buf.String(), "[request]")

	// Absent logger falls back to the default.
	assert.Same(t, Default(), FromContext(context.Background()))
}
