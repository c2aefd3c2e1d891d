package action_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midiflux/core/action"
	"github.com/midiflux/core/mock"
	"github.com/midiflux/core/state"
)

func TestFactory_OptionalServiceActions_ConstructInBothContexts(t *testing.T) {
	editor := action.NewEditorFactory()
	runtime := action.NewRuntimeFactory(action.Services{})

	cfg := &action.KeyPressReleaseConfig{VirtualKey: 65}

	act, err := editor.Create(cfg)
	require.NoError(t, err)
	require.NotNil(t, act)

	act2, err := runtime.Create(cfg)
	require.NoError(t, err)
	require.NotNil(t, act2)
}

func TestFactory_EditorContextAction_FailsAtExecute(t *testing.T) {
	editor := action.NewEditorFactory()
	act, err := editor.Create(&action.KeyPressReleaseConfig{VirtualKey: 65})
	require.NoError(t, err)

	err = act.Execute(context.Background(), 0, false)
	require.Error(t, err)
	var svcErr *action.ServiceUnavailableError
	assert.True(t, errors.As(err, &svcErr))
}

func TestFactory_RequiredServiceAction_FailsFastInRuntimeContext(t *testing.T) {
	runtime := action.NewRuntimeFactory(action.Services{}) // no state store
	_, err := runtime.Create(&action.SetStateConfig{StateKey: "Foo", StateValue: 1})
	require.Error(t, err)
	var svcErr *action.ServiceUnavailableError
	assert.True(t, errors.As(err, &svcErr))
}

func TestFactory_RequiredServiceAction_ConstructsInEditorContext(t *testing.T) {
	editor := action.NewEditorFactory()
	act, err := editor.Create(&action.SetStateConfig{StateKey: "Foo", StateValue: 1})
	require.NoError(t, err)
	require.NotNil(t, act)

	err = act.Execute(context.Background(), 0, false)
	require.Error(t, err)
	var svcErr *action.ServiceUnavailableError
	assert.True(t, errors.As(err, &svcErr))
}

func TestFactory_CompositeRecursesThroughChildren(t *testing.T) {
	st := state.New()
	sim := mock.NewSimulator()
	runtime := action.NewRuntimeFactory(action.Services{State: st, Input: sim})

	cfg := &action.SequenceConfig{
		SubActions: []action.Config{
			&action.KeyDownConfig{VirtualKey: 10},
			&action.KeyUpConfig{VirtualKey: 10},
		},
		ErrorHandling: action.ContinueOnError,
	}
	act, err := runtime.Create(cfg)
	require.NoError(t, err)

	err = act.Execute(context.Background(), 0, false)
	require.NoError(t, err)
	assert.False(t, sim.IsKeyDown(10))
}
