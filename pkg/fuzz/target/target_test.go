package target

import (
	"errors"
	"testing"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/fuzzerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareOneOkEqual(t *testing.T) {
	result := compareOne(Ok([]byte("abc")), []byte("abc"), nil)
	assert.Nil(t, result)
}

func TestCompareOneOkNotEqual(t *testing.T) {
	result := compareOne(Ok([]byte("abc")), []byte("xyz"), nil)
	require.NotNil(t, result)
	assert.Contains(t, result.Error(), "OkNotEqual")
}

func TestCompareOneRemoteErrorMatchesControlString(t *testing.T) {
	result := compareOne(Fail(&fuzzerr.RemoteError{Msg: "bad input"}), nil, errors.New("bad input"))
	assert.Nil(t, result)
}

func TestCompareOneRemoteErrorMismatch(t *testing.T) {
	result := compareOne(Fail(&fuzzerr.RemoteError{Msg: "bad input"}), nil, errors.New("other"))
	require.NotNil(t, result)
	assert.Contains(t, result.Error(), "ErrNotEqual")
}

func TestCompareOneLeftErr(t *testing.T) {
	result := compareOne(Fail(&fuzzerr.RemoteError{Msg: "bad input"}), []byte("abc"), nil)
	require.NotNil(t, result)
	assert.Contains(t, result.Error(), "LeftErr")
}

func TestCompareOneRightErr(t *testing.T) {
	result := compareOne(Ok([]byte("abc")), nil, errors.New("bad control"))
	require.NotNil(t, result)
	assert.Contains(t, result.Error(), "RightErr")
}

func TestCompareOneIoErrorDegradesToNoComp(t *testing.T) {
	result := compareOne(Fail(&fuzzerr.IoError{Err: errors.New("broken pipe")}), []byte("abc"), nil)
	require.NotNil(t, result)
	assert.True(t, result.IsNoComp())
}

func TestThreadContextCloseNilSafe(t *testing.T) {
	ctx := &ThreadContext{}
	assert.NoError(t, ctx.Close())
}
