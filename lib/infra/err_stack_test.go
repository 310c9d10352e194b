package infra

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var errSentinel = errors.New("sentinel")

func TestWrapErrorStack_NilStaysNil(t *testing.T) {
	require.NoError(t, WrapErrorStack(nil))
	require.NoError(t, WrapErrorStackWithMessage(nil, "whatever"))
}

func TestWrapErrorStack_UnwrapMatchesSentinel(t *testing.T) {
	err := WrapErrorStack(errSentinel)
	require.Error(t, err)
	require.ErrorIs(t, err, errSentinel)
	require.Equal(t, "sentinel", err.Error())
}

func TestWrapErrorStackWithMessage(t *testing.T) {
	err := WrapErrorStackWithMessage(errSentinel, "load key")
	require.Error(t, err)
	require.ErrorIs(t, err, errSentinel)
	require.Equal(t, "load key: sentinel", err.Error())
}

func TestErrorStackFormat(t *testing.T) {
	err := WrapErrorStackWithMessage(errSentinel, "load key")
	require.Equal(t, "load key: sentinel", fmt.Sprintf("%s", err))
	require.Equal(t, "load key: sentinel", fmt.Sprintf("%v", err))

	verbose := fmt.Sprintf("%+v", err)
	require.Contains(t, verbose, "load key: sentinel")
	require.Contains(t, verbose, "err_stack_test.go")
}
