// robosim-server serves the arena over SSH. Every connection gets its
// own camera and robots; the world and texture are loaded once.
//
//	go build -o robosim-server ./cmd/server
//	./robosim-server [--port 2222] [--host-key robosim_host_key] [--max-sessions 8]
//
// Then connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"robosim/assets"
	"robosim/internal/config"
	"robosim/internal/game"
	"robosim/internal/logging"
	internalssh "robosim/internal/ssh"
	"robosim/internal/texture"
	"robosim/internal/world"

	gossh "github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	xssh "golang.org/x/crypto/ssh"
)

// fallbackTerm is used when the client's TERM is missing or not allowed.
const fallbackTerm = "xterm-256color"

// allowedTerms lists the TERM values passed through to terminfo lookup.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

func main() {
	fs := pflag.NewFlagSet("robosim-server", pflag.ExitOnError)
	config.RegisterFlags(fs)
	config.RegisterServerFlags(fs)
	_ = fs.Parse(os.Args[1:])

	if err := run(fs); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(fs *pflag.FlagSet) error {
	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}
	log, closer, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Loaded once; sessions only read them.
	mesh, meshErr := assets.LoadWorld(cfg.Assets.World)
	if meshErr != nil {
		log.Error().Err(meshErr).Msg("load world; sessions will see an empty arena")
	}
	tex, texErr := assets.LoadTexture(cfg.Assets.Texture)
	if texErr != nil {
		log.Error().Err(texErr).Msg("load texture; sessions will stay on the loading screen")
	}

	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, log)
	if err != nil {
		return err
	}

	lobby := internalssh.NewLobby(cfg.Server.MaxSessions)
	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: func(s gossh.Session) {
			serve(s, lobby, cfg, log,
				func() (*world.Mesh, error) { return mesh, meshErr },
				func() (*texture.Texture, error) { return tex, texErr })
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Any client may join; this is a demo arena, not an account system.
		HostSigners: []gossh.Signer{signer},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = srv.Close()
	}()

	log.Info().
		Int("port", cfg.Server.Port).
		Int("max_sessions", cfg.Server.MaxSessions).
		Str("bounds", cfg.BoundsPolicy().String()).
		Msg("robosim SSH server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// serve runs one player's session. It blocks for the whole connection.
func serve(s gossh.Session, lobby *internalssh.Lobby, cfg config.Config, log zerolog.Logger,
	loadMesh game.MeshLoader, loadTexture game.TextureLoader) {
	remote := s.RemoteAddr().String()
	log = log.With().Str("remote", remote).Logger()

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "robosim needs a terminal. Connect with: ssh -t -p <port> <host>")
		return
	}

	leave, ok := lobby.Join()
	if !ok {
		fmt.Fprintf(s, "The arena is full (%d players). Come back later.\n", lobby.Capacity())
		log.Info().Msg("session refused, lobby full")
		return
	}
	defer leave()

	term := terminalType(s.Environ())
	screen, err := internalssh.NewScreen(s, pty, winCh, term)
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		log.Warn().Err(err).Str("term", term).Msg("screen setup")
		return
	}

	log.Info().Str("term", term).Int("active", lobby.Active()).Msg("session started")
	g := game.New(screen, game.Options{
		Config:      cfg,
		Logger:      log,
		LoadMesh:    loadMesh,
		LoadTexture: loadTexture,
		Remote:      remote,
	})
	if err := g.Run(s.Context()); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Msg("session ended")
	}
	log.Info().Uint64("ticks", g.State().Ticks).Msg("session closed")
}

// terminalType picks the client's TERM when it is on the allow-list.
func terminalType(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok {
			if allowedTerms[term] {
				return term
			}
			break
		}
	}
	return fallbackTerm
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key when the file is absent or unreadable.
func loadOrCreateHostKey(path string, log zerolog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info().Str("path", path).Msg("loaded host key")
			return signer, nil
		}
		log.Warn().Str("path", path).Msg("host key unreadable, replacing it")
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "robosim server")
	if err != nil {
		return nil, fmt.Errorf("encode host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("host key not persisted")
	} else {
		log.Info().Str("path", path).Msg("generated new ed25519 host key")
	}
	return signer, nil
}
