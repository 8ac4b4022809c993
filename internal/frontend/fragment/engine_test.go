package fragment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_RequiresExecFunc(t *testing.T) {
	_, err := NewEngine(nil, nil)
	assert.Error(t, err)
}

func TestActivate_RunsEveryScriptOnceInOrder(t *testing.T) {
	var activated []string
	engine, err := NewEngine(func(ctx context.Context, script Script) error {
		if script.External() {
			activated = append(activated, script.Src)
		} else {
			activated = append(activated, script.Inline)
		}
		return nil
	}, nil)
	require.NoError(t, err)

	frag := Fragment{Scripts: []Script{
		{Src: "/a.js"},
		{Inline: "first();"},
		{Src: "/b.js"},
	}}
	engine.Activate(context.Background(), frag)

	assert.Equal(t, []string{"/a.js", "first();", "/b.js"}, activated)
}

func TestActivate_FailureDoesNotStopRemaining(t *testing.T) {
	var activated []string
	engine, err := NewEngine(func(ctx context.Context, script Script) error {
		activated = append(activated, script.Src)
		if script.Src == "/broken.js" {
			return errors.New("load failed")
		}
		return nil
	}, nil)
	require.NoError(t, err)

	frag := Fragment{Scripts: []Script{
		{Src: "/broken.js"},
		{Src: "/after.js"},
	}}
	engine.Activate(context.Background(), frag)

	assert.Equal(t, []string{"/broken.js", "/after.js"}, activated)
}

func TestActivate_PanicIsContained(t *testing.T) {
	var activated []string
	engine, err := NewEngine(func(ctx context.Context, script Script) error {
		if script.Src == "/panics.js" {
			panic("boom")
		}
		activated = append(activated, script.Src)
		return nil
	}, nil)
	require.NoError(t, err)

	frag := Fragment{Scripts: []Script{
		{Src: "/panics.js"},
		{Src: "/survivor.js"},
	}}

	assert.NotPanics(t, func() {
		engine.Activate(context.Background(), frag)
	})
	assert.Equal(t, []string{"/survivor.js"}, activated)
}
