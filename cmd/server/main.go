// cavemesh-server serves the cave viewer over SSH. Every connection gets its
// own viewer and caves. Build:
//
//	go build -o cavemesh-server ./cmd/server
//
// Usage:
//
//	./cavemesh-server [-port 2222] [-key server_host_key] [-max-sessions 16] [viewer flags]
//
// Connect, optionally passing a seed as the command:
//
//	ssh -t -p 2222 localhost
//	ssh -t -p 2222 localhost granite
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode"

	internalssh "cavemesh/internal/ssh"
	"cavemesh/internal/viewer"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	maxSessions := flag.Int("max-sessions", 16, "maximum concurrent viewers")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	vf := viewer.NewFlags(flag.CommandLine)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := vf.Config(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg.Source = "ssh"

	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	l := newLobby(cfg, *maxSessions, logger)

	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: l.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: the viewer is read-only and holds no user data.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("cavemesh SSH server listening", "port", *port, "max_sessions", *maxSessions)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// ─── lobby ──────────────────────────────────────────────────────────────────

// lobby admits SSH sessions up to a fixed limit and runs one viewer for each.
type lobby struct {
	cfg    viewer.Config
	log    *slog.Logger
	mu     sync.Mutex
	active int
	limit  int
	nextID int
}

func newLobby(cfg viewer.Config, limit int, logger *slog.Logger) *lobby {
	return &lobby{cfg: cfg, limit: limit, log: logger}
}

// admit reserves a viewer slot and returns its session id.
func (l *lobby) admit() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.limit > 0 && l.active >= l.limit {
		return 0, false
	}
	l.active++
	l.nextID++
	return l.nextID, true
}

func (l *lobby) leave() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
}

// sessionConfig derives the viewer config for one connection. A non-empty
// command is used as the first cave's seed.
func (l *lobby) sessionConfig(id int, command []string) viewer.Config {
	cfg := l.cfg
	if seed := sanitizeSeed(strings.Join(command, " ")); seed != "" {
		cfg.Generate.Seed = seed
		cfg.Generate.UseRandomSeed = false
	}
	cfg.Logger = l.log.With("session", id)
	cfg.Generate.Logger = cfg.Logger
	return cfg
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the connection so the SSH session stays open.
func (l *lobby) handleSession(s gossh.Session) {
	id, ok := l.admit()
	if !ok {
		fmt.Fprintln(s, "Server is full, try again later.")
		return
	}
	defer l.leave()

	screen, err := internalssh.NewScreen(s)
	if errors.Is(err, internalssh.ErrNoPTY) {
		fmt.Fprintln(s, "The cave viewer requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}

	cfg := l.sessionConfig(id, s.Command())
	cfg.Logger.Info("viewer started", "user", sanitizeSeed(s.User()), "remote", s.RemoteAddr().String())

	// A dropped connection finalises the screen, which ends the event loop.
	go func() {
		<-s.Context().Done()
		screen.Fini()
	}()
	viewer.New(screen, cfg).Run()
	cfg.Logger.Info("viewer closed")
}

// maxSeedBytes caps seeds taken from SSH commands.
const maxSeedBytes = 16

// sanitizeSeed drops non-printable runes and truncates to maxSeedBytes
// without splitting a rune.
func sanitizeSeed(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsPrint(r) {
			continue
		}
		if b.Len()+len(string(r)) > maxSeedBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	pemBlock, err := xssh.MarshalPrivateKey(key, "cavemesh server")
	if err == nil {
		err = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	if err != nil {
		logger.Warn("host key not saved", "path", path, "error", err)
	}
	return signer, nil
}
