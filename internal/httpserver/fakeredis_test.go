package httpserver

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeRedis speaks just enough RESP2 for the store's cache and usage calls.
// Replies are looked up by upper-cased command name; anything unknown gets
// an error reply so every command is still answered once.
type fakeRedis struct {
	addr    string
	replies map[string]string

	mu       sync.Mutex
	commands [][]string
}

func newFakeRedis(t *testing.T, replies map[string]string) *fakeRedis {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	f := &fakeRedis{addr: ln.Addr().String(), replies: replies}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go f.serve(conn)
		}
	}()
	return f
}

func (f *fakeRedis) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	inMulti := false

	for {
		cmd, err := readCommand(r)
		if err != nil {
			return
		}
		f.mu.Lock()
		f.commands = append(f.commands, cmd)
		f.mu.Unlock()

		name := strings.ToUpper(cmd[0])
		var reply string
		switch {
		case name == "MULTI":
			inMulti, reply = true, "+OK\r\n"
		case name == "EXEC":
			inMulti, reply = false, "*2\r\n:1\r\n:1\r\n"
		case inMulti:
			reply = "+QUEUED\r\n"
		default:
			var ok bool
			if reply, ok = f.replies[name]; !ok {
				reply = "-ERR unknown command '" + cmd[0] + "'\r\n"
			}
		}
		if _, err := io.WriteString(conn, reply); err != nil {
			return
		}
	}
}

// received reports whether a command with the given name was sent.
func (f *fakeRedis) received(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.commands {
		if strings.EqualFold(c[0], name) {
			return true
		}
	}
	return false
}

func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "*") {
		return nil, fmt.Errorf("unexpected line %q", line)
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, n)
	for i := 0; i < n; i++ {
		header, err := readLine(r)
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimPrefix(header, "$"))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}
	return args, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
