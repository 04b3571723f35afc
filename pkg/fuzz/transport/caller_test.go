package transport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestFrameRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01},
		bytes.Repeat([]byte{0xAB}, 4096),
	}
	for _, payload := range cases {
		var buf bytes.Buffer
		require.NoError(t, WriteRequest(&buf, 0x04, payload))

		header := buf.Next(2)
		gotLen := int(header[0])<<8 | int(header[1])
		assert.Equal(t, len(payload), gotLen)

		addr, _ := buf.ReadByte()
		assert.Equal(t, byte(0x04), addr)
		assert.Equal(t, payload, buf.Bytes())
	}
}

func TestRequestFrameRejectsOverLength(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRequest(&buf, 0x04, make([]byte, MaxFrameLen+1))
	require.Error(t, err)
}

func TestReplyFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	body := []byte("hello world")
	require.NoError(t, writeReply(&buf, body, false))

	got, isErr, err := ReadReply(&buf)
	require.NoError(t, err)
	assert.False(t, isErr)
	assert.Equal(t, body, got)
}

func TestReplyFrameErrorFlag(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReply(&buf, []byte("bad input"), true))

	got, isErr, err := ReadReply(&buf)
	require.NoError(t, err)
	assert.True(t, isErr)
	assert.Equal(t, "bad input", string(got))
}

func TestReplyFrameShortReadErrors(t *testing.T) {
	// header claims 10 body bytes but only 3 are present.
	buf := bytes.NewBuffer([]byte{0x00, 0x0A, 0x00, 'a', 'b', 'c'})
	_, _, err := ReadReply(buf)
	require.Error(t, err)
}

// writeReply is the reply-side mirror of WriteRequest, used only by tests —
// production replies are written by the helper binaries, not this package.
func writeReply(buf *bytes.Buffer, body []byte, isErr bool) error {
	header := make([]byte, 3)
	header[0] = byte(len(body) >> 8)
	header[1] = byte(len(body))
	if isErr {
		header[2] = 1
	}
	buf.Write(header)
	buf.Write(body)
	return nil
}
