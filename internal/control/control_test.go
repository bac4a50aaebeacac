package control

import (
	"bufio"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"layoutswitchd/internal/config"
)

func TestParseBool(t *testing.T) {
	cases := []struct {
		in      string
		want    bool
		wantOk  bool
	}{
		{"1", true, true}, {"on", true, true}, {"true", true, true}, {"TRUE", true, true},
		{"0", false, true}, {"off", false, true}, {"false", false, true},
		{"maybe", false, false}, {"", false, false},
	}
	for _, c := range cases {
		got, ok := parseBool(c.in)
		if got != c.want || ok != c.wantOk {
			t.Errorf("parseBool(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.wantOk)
		}
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	shared := NewSharedState(config.NewDefault())
	return NewServer("", shared, nil, nil)
}

func TestDispatchGetStatus(t *testing.T) {
	s := newTestServer(t)
	s.shared.SetEnabled(true)
	if got := s.dispatch("GET_STATUS", "req1"); got != "OK ENABLED" {
		t.Errorf("dispatch(GET_STATUS) = %q, want OK ENABLED", got)
	}
	s.shared.SetEnabled(false)
	if got := s.dispatch("get_status", "req2"); got != "OK DISABLED" {
		t.Errorf("dispatch(get_status) (lowercase) = %q, want OK DISABLED", got)
	}
}

func TestDispatchSetStatus(t *testing.T) {
	s := newTestServer(t)
	if got := s.dispatch("SET_STATUS on", "req"); got != "OK ENABLED" {
		t.Errorf("dispatch(SET_STATUS on) = %q, want OK ENABLED", got)
	}
	if !s.shared.Enabled() {
		t.Error("SET_STATUS on should have flipped the shared state")
	}
	if got := s.dispatch("SET_STATUS bogus", "req"); got != `ERROR Invalid SET_STATUS argument "bogus"` {
		t.Errorf("dispatch(SET_STATUS bogus) = %q", got)
	}
}

func TestDispatchUnknownAndEmptyCommand(t *testing.T) {
	s := newTestServer(t)
	if got := s.dispatch("", "req"); got != "ERROR Empty command" {
		t.Errorf("dispatch(\"\") = %q", got)
	}
	if got := s.dispatch("FROBNICATE", "req"); got != `ERROR Unknown command "FROBNICATE"` {
		t.Errorf("dispatch(FROBNICATE) = %q", got)
	}
	if got := s.dispatch("SHUTDOWN", "req"); got != "ERROR Shutdown not allowed via IPC" {
		t.Errorf("dispatch(SHUTDOWN) = %q", got)
	}
}

func TestDispatchReloadWithNoConfigOnDiskUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	shared := NewSharedState(config.NewDefault())
	s := NewServer("", shared, []string{filepath.Join(dir, "missing.yaml")}, nil)

	got := s.dispatch("RELOAD", "req")
	if got != "OK reloaded from <defaults>" {
		t.Errorf("dispatch(RELOAD) with no config on disk = %q, want a default-reload OK", got)
	}
}

func TestDispatchReloadExplicitMissingPathFails(t *testing.T) {
	s := newTestServer(t)
	got := s.dispatch("RELOAD /no/such/file.yaml", "req")
	if got[:6] != "ERROR " {
		t.Errorf("dispatch(RELOAD /no/such/file.yaml) = %q, want an ERROR reply", got)
	}
}

func TestServerListenServeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sockPath := filepath.Join(dir, "ctl.sock")
	shared := NewSharedState(config.NewDefault())
	s := NewServer(sockPath, shared, nil, nil)

	if err := s.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer s.Close()

	go s.Serve()

	conn, err := net.DialTimeout("unix", sockPath, time.Second)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("GET_STATUS\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("reading reply: %v", err)
	}
	if reply != "OK ENABLED\n" {
		t.Errorf("reply = %q, want \"OK ENABLED\\n\"", reply)
	}
}

func TestServerListenCreatesWorldReadWriteSocket(t *testing.T) {
	dir := t.TempDir()
	sockPath := filepath.Join(dir, "ctl.sock")
	s := NewServer(sockPath, NewSharedState(config.NewDefault()), nil, nil)
	if err := s.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer s.Close()

	info, err := os.Stat(sockPath)
	if err != nil {
		t.Fatalf("Stat socket: %v", err)
	}
	if info.Mode().Perm() != SocketPerm {
		t.Errorf("socket perm = %v, want %v", info.Mode().Perm(), os.FileMode(SocketPerm))
	}
}

func TestServerCloseRemovesSocketFile(t *testing.T) {
	dir := t.TempDir()
	sockPath := filepath.Join(dir, "ctl.sock")
	s := NewServer(sockPath, NewSharedState(config.NewDefault()), nil, nil)
	if err := s.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(sockPath); !os.IsNotExist(err) {
		t.Error("Close should remove the socket file")
	}
}
