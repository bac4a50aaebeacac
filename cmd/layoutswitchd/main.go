// Command layoutswitchd is the daemon entry point: it reads raw
// input_event records from stdin, runs them through the event router,
// and writes the (possibly rewritten) stream to stdout, while a
// Unix-domain control socket accepts GET_STATUS/SET_STATUS/RELOAD
// commands from a companion CLI.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sourcegraph/conc/pool"
	flag "github.com/spf13/pflag"

	"layoutswitchd/internal/clipboarddrv"
	"layoutswitchd/internal/config"
	"layoutswitchd/internal/control"
	"layoutswitchd/internal/dictionary"
	"layoutswitchd/internal/guard"
	"layoutswitchd/internal/logging"
	"layoutswitchd/internal/macro"
	"layoutswitchd/internal/osslayout"
	"layoutswitchd/internal/router"
	"layoutswitchd/internal/session"
	"layoutswitchd/internal/sound"
	"layoutswitchd/internal/wire"
)

// version is stamped at build time via -ldflags; left as a plain
// default for a dev build run straight out of the tree.
var version = "dev"

const socketPath = "/run/layoutswitchd.sock"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath = flag.StringP("config", "c", "", "path to config.yaml (overrides the usual search order)")
		showHelp   = flag.BoolP("help", "h", false, "show this help message")
		showVer    = flag.BoolP("version", "v", false, "print the version and exit")
	)
	flag.Parse()

	if *showHelp {
		fmt.Fprintln(os.Stderr, "layoutswitchd [-c config.yaml]")
		flag.PrintDefaults()
		return 0
	}
	if *showVer {
		fmt.Println("layoutswitchd", version)
		return 0
	}

	log, err := logging.New(logging.Config{Level: logging.LevelInfo, MaxEntries: 500})
	if err != nil {
		fmt.Fprintln(os.Stderr, "layoutswitchd: logger init:", err)
		return 1
	}
	defer log.Close()

	active, err := session.Discover()
	if err != nil {
		log.Warn("main", "no active desktop session found, clipboard/sound/layout-query disabled: %v", err)
	}

	homeDir := ""
	if active != nil {
		homeDir = active.Home
	} else if h, err := os.UserHomeDir(); err == nil {
		homeDir = h
	}
	searchPaths := config.SearchPaths(homeDir)

	snap, err := config.Load(*configPath, searchPaths)
	if err != nil {
		log.Warn("main", "config load failed, starting from defaults: %v", err)
		snap = config.NewDefault()
	}
	shared := control.NewSharedState(snap)

	dict, err := dictionary.Load(dictionary.DefaultPaths())
	if err != nil {
		log.Warn("main", "dictionary load incomplete: %v", err)
	}
	if dict != nil {
		log.Info("main", "dictionary ready: %d english, %d russian words", dict.EnglishSize(), dict.RussianSize())
	}

	events := make(chan wire.Event, guard.MaxQueued)
	g := guard.New(events)

	keyPress, layoutSwitch, retype, turboKeyPress, turboRetype := snap.Delays.Delays()
	delays := macro.Delays{
		KeyPress:      keyPress,
		LayoutSwitch:  layoutSwitch,
		Retype:        retype,
		TurboKeyPress: turboKeyPress,
		TurboRetype:   turboRetype,
	}
	writer := wire.NewWriter(os.Stdout)
	inj := macro.NewInjector(writer, delays, g)

	modCode, okMod := wire.KeyNameToCode(snap.Hotkey.Modifier)
	keyCode, okKey := wire.KeyNameToCode(snap.Hotkey.Key)
	if !okMod || !okKey {
		log.Warn("main", "unknown hotkey %q/%q, falling back to leftctrl+grave", snap.Hotkey.Modifier, snap.Hotkey.Key)
		modCode, _ = wire.KeyNameToCode(config.DefaultHotkeyModifier)
		keyCode, _ = wire.KeyNameToCode(config.DefaultHotkeyKey)
	}
	planner := macro.NewPlanner(inj, g, macro.HotkeyChord{Modifier: modCode, Key: keyCode})

	var layoutCollab osslayout.Collaborator
	var clip *clipboarddrv.Driver
	var player *sound.Player

	if active != nil {
		layoutCollab = osslayout.New(active.Display, active.XAuthority)

		paster := clipboarddrv.NewKeyPaster(func(modifier, key wire.Scancode) error {
			return inj.SendLayoutHotkey(modifier, key)
		}, false)
		clip = clipboarddrv.New(paster)
		if err := clip.Init(); err != nil {
			log.Warn("main", "clipboard driver unavailable: %v", err)
		}

		player = sound.New(sound.User{
			UID:           uint32(active.UID),
			GID:           uint32(active.GID),
			Home:          active.Home,
			XDGRuntimeDir: active.XDGRuntimeDir,
		}, snap.Sound.Enabled)
	} else {
		layoutCollab = osslayout.Static{Layout: 0}
	}

	r := router.New(router.Config{
		Injector:     inj,
		Planner:      planner,
		Guard:        g,
		Dict:         dict,
		Shared:       shared,
		LayoutCollab: layoutCollab,
		Clipboard:    clip,
		Player:       player,
		Logger:       log,
	})

	watcher, err := config.NewWatcher(searchPaths, func() {
		if reloaded, result := config.Reload("", searchPaths); result.Success {
			shared.Publish(reloaded)
			log.Info("main", "config reloaded: %s", result.Message)
		} else {
			log.Warn("main", "config auto-reload failed: %s", result.Message)
		}
	})
	if err != nil {
		log.Warn("main", "config file watch unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		log.Warn("main", "could not ensure socket directory: %v", err)
	}
	srv := control.NewServer(socketPath, shared, searchPaths, log)
	if err := srv.Listen(); err != nil {
		log.Error("main", "control socket unavailable: %v", err)
		return 1
	}
	defer srv.Close()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	p := pool.New().WithErrors()

	p.Go(func() error {
		reader := wire.NewReader(os.Stdin)
		defer close(events)
		for {
			ev, err := reader.Next()
			if err != nil {
				return nil // EOF or malformed tail: exit the read loop quietly (§7)
			}
			events <- ev
		}
	})

	p.Go(func() error {
		r.Run(events)
		return nil
	})

	p.Go(func() error {
		return srv.Serve()
	})

	done := make(chan struct{})
	go func() {
		if err := p.Wait(); err != nil {
			log.Error("main", "worker pool exited: %v", err)
		}
		close(done)
	}()

	select {
	case <-sigs:
		log.Info("main", "signal received, shutting down")
		srv.Close()
		// Let a macro already in flight run to completion before the
		// process exits. The pool itself is not waited on: the reader
		// goroutine may still be blocked on stdin.
		for g.Active() {
			time.Sleep(5 * time.Millisecond)
		}
	case <-done:
	}

	return 0
}
