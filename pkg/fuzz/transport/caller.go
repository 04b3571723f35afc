// Package transport implements the framed request/reply protocol the fuzzer
// speaks to each helper binary over its piped stdin/stdout, and the scoped
// Caller handle that owns one such child process.
package transport

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/fuzzerr"
)

// MaxFrameLen is the largest payload/body a frame may carry (u16::MAX).
const MaxFrameLen = 65535

// Caller owns one child process, communicating with it over piped
// stdin/stdout using the framed protocol in WriteRequest/ReadReply. It is not
// safe for concurrent use — each worker owns its own Caller per
// implementation under test.
type Caller struct {
	name string
	cmd  *exec.Cmd
	in   io.WriteCloser
	out  *bufio.Reader
}

// New starts path as a child process with piped stdin/stdout. name is used
// only for diagnostics.
func New(name, path string, args ...string) (*Caller, error) {
	cmd := exec.Command(path, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe for %s: %w", name, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe for %s: %w", name, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}

	return &Caller{
		name: name,
		cmd:  cmd,
		in:   stdin,
		out:  bufio.NewReader(stdout),
	}, nil
}

// Name returns the diagnostic name this Caller was constructed with.
func (c *Caller) Name() string { return c.name }

// RunPrecompile performs one framed request/reply round trip: write the
// request frame to the child's stdin, then read and decode the reply frame
// from its stdout.
func (c *Caller) RunPrecompile(address byte, input []byte) ([]byte, error) {
	if err := WriteRequest(c.in, address, input); err != nil {
		return nil, &fuzzerr.IoError{Err: err}
	}
	body, isErr, err := ReadReply(c.out)
	if err != nil {
		return nil, &fuzzerr.IoError{Err: err}
	}
	if isErr {
		return nil, &fuzzerr.RemoteError{Msg: string(body)}
	}
	return body, nil
}

// Close kills the child process unconditionally. It is safe to call Close
// more than once. This is the Go analogue of the reference implementation's
// kill-on-drop: there is no destructor to hook, so every code path that owns
// a Caller must defer Close explicitly.
func (c *Caller) Close() error {
	if c.cmd.Process == nil || c.cmd.ProcessState != nil {
		return nil
	}
	_ = c.in.Close()
	if err := c.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("kill %s: %w", c.name, err)
	}
	_ = c.cmd.Wait()
	return nil
}

// WriteRequest encodes and writes one request frame: u16-be(len(input)),
// then address, then input.
func WriteRequest(w io.Writer, address byte, input []byte) error {
	if len(input) > MaxFrameLen {
		return fmt.Errorf("payload length %d exceeds max frame length %d", len(input), MaxFrameLen)
	}
	header := make([]byte, 3)
	binary.BigEndian.PutUint16(header[:2], uint16(len(input)))
	header[2] = address
	if _, err := w.Write(header); err != nil {
		return err
	}
	if len(input) == 0 {
		return nil
	}
	_, err := w.Write(input)
	return err
}

// ReadReply reads and decodes one reply frame: u16-be(body_len), one error
// flag byte, then exactly body_len body bytes. Reads are exact — a short
// read surfaces as an error, never a truncated body.
func ReadReply(r io.Reader) (body []byte, isErr bool, err error) {
	header := make([]byte, 3)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, false, err
	}
	bodyLen := binary.BigEndian.Uint16(header[:2])
	flag := header[2]

	body = make([]byte, bodyLen)
	if bodyLen > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, false, err
		}
	}
	return body, flag == 1, nil
}
