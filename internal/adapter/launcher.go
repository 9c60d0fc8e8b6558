package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// Launcher hands a stream URL to an external player
type Launcher struct {
	command   string   // configured player command, empty to auto-detect
	args      []string // additional arguments for the player
	startFlag string   // offset flag prefix, e.g., "--start=" or "-ss "
	goos      string
	proc      processRunner
	logger    *slog.Logger
}

// processRunner abstracts process creation so launch decisions can be tested
type processRunner interface {
	LookPath(file string) (string, error)
	Start(name string, args ...string) error // detach
	Run(name string, args ...string) error   // wait for exit
}

type execRunner struct{}

func (execRunner) LookPath(file string) (string, error) { return exec.LookPath(file) }
func (execRunner) Start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}
func (execRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // command name, or "open-a:AppName" for macOS apps
	openFlags []string // macOS open flags, e.g. ["-n"]
}

// playerSpec holds per-player launch configuration
type playerSpec struct {
	offsetFlag string
	platforms  map[string][]launchPath
}

var players = map[string]playerSpec{
	"mpv": {
		offsetFlag: "--start=",
		platforms: map[string][]launchPath{
			"darwin":  {{path: "mpv"}},
			"linux":   {{path: "mpv"}},
			"windows": {{path: "mpv"}},
		},
	},
	"vlc": {
		offsetFlag: "--start-time=",
		platforms: map[string][]launchPath{
			"darwin":  {{path: "vlc"}, {path: "open-a:VLC"}},
			"linux":   {{path: "vlc"}},
			"windows": {{path: "vlc"}},
		},
	},
	"iina": {
		offsetFlag: "--mpv-start=",
		platforms: map[string][]launchPath{
			"darwin": {{path: "open-a:IINA", openFlags: []string{"-n"}}},
		},
	},
	"celluloid": {
		offsetFlag: "--mpv-start=",
		platforms: map[string][]launchPath{
			"linux": {{path: "celluloid"}},
		},
	},
	"ffplay": {
		offsetFlag: "-ss ",
		platforms: map[string][]launchPath{
			"darwin":  {{path: "ffplay"}},
			"linux":   {{path: "ffplay"}},
			"windows": {{path: "ffplay"}},
		},
	},
}

// candidatePlayers is the preferred player order per platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "vlc", "mpv"},
	"linux":   {"mpv", "celluloid", "vlc", "ffplay"},
	"windows": {"vlc", "mpv", "ffplay"},
}

// NewLauncher creates a launcher. A known player's offset flag is detected
// when startFlag is empty.
func NewLauncher(cfg PlayerConfig, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	flag := cfg.StartFlag
	if flag == "" && cfg.Command != "" {
		if pl, ok := players[playerName(cfg.Command)]; ok {
			flag = pl.offsetFlag
			logger.Debug("auto-detected player offset flag", "player", playerName(cfg.Command), "flag", flag)
		}
	}

	return &Launcher{
		command:   cfg.Command,
		args:      append([]string{}, cfg.Args...),
		startFlag: flag,
		goos:      runtime.GOOS,
		proc:      execRunner{},
		logger:    logger,
	}
}

// playerName reduces a command path to its registry key
func playerName(command string) string {
	base := filepath.Base(command)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}

// OffsetArgs renders a resume offset for flag. Flags ending in a space take
// the value as a separate argument ("-ss 120"); others get it appended
// ("--start=120"). Zero offsets and empty flags produce nothing.
func OffsetArgs(flag string, offset time.Duration) []string {
	if offset <= 0 || flag == "" {
		return nil
	}
	secs := fmt.Sprintf("%.0f", offset.Seconds())
	if strings.HasSuffix(flag, " ") {
		return []string{strings.TrimSuffix(flag, " "), secs}
	}
	return []string{flag + secs}
}

// Launch opens url in the configured player, then a detected one, then the
// system default handler.
func (l *Launcher) Launch(ctx context.Context, url string, offset time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if l.command != "" {
		l.logger.Info("using configured player", "command", l.command)
		return l.launchConfigured(url, offset)
	}

	if name, err := l.detectAndLaunch(url, offset); err == nil {
		l.logger.Info("launched with detected player", "player", name)
		return nil
	}

	l.logger.Info("no candidate players found, using system default")
	if err := l.launchDefault(url); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNoPlayer, err)
	}
	return nil
}

func (l *Launcher) launchConfigured(url string, offset time.Duration) error {
	args := append([]string{}, l.args...)
	if offset > 0 && l.startFlag == "" {
		l.logger.Warn("cannot set start offset - unknown player, configure start_flag in config",
			"command", l.command, "offset", offset)
	}
	args = append(args, OffsetArgs(l.startFlag, offset)...)

	if _, err := l.proc.LookPath(l.command); err != nil {
		// GUI apps on macOS are often not in PATH
		if l.goos == "darwin" {
			return l.openApp(l.command, url, args, nil)
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrNoPlayer, l.command, err)
	}

	l.logger.Info("launching player", "command", l.command, "args", args, "url", url)
	return l.proc.Start(l.command, append(args, url)...)
}

// detectAndLaunch tries candidate players in order, returning the one that started
func (l *Launcher) detectAndLaunch(url string, offset time.Duration) (string, error) {
	candidates, ok := candidatePlayers[l.goos]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		pl := players[name]
		paths, ok := pl.platforms[l.goos]
		if !ok {
			continue
		}
		offsetArgs := OffsetArgs(pl.offsetFlag, offset)

		for _, lp := range paths {
			var err error
			if app, isApp := strings.CutPrefix(lp.path, "open-a:"); isApp {
				err = l.openApp(app, url, offsetArgs, lp.openFlags)
			} else if _, err = l.proc.LookPath(lp.path); err == nil {
				err = l.proc.Start(lp.path, append(append([]string{}, offsetArgs...), url)...)
			}
			if err == nil {
				return name, nil
			}
			l.logger.Debug("launch path not available", "player", name, "path", lp.path, "error", err)
		}
	}
	return "", domain.ErrNoPlayer
}

// openApp launches a macOS application with "open -a". It waits so that a
// missing app is reported as an error.
func (l *Launcher) openApp(app, url string, playerArgs, openFlags []string) error {
	args := append([]string{}, openFlags...)
	args = append(args, "-a", app)
	if len(playerArgs) > 0 {
		args = append(args, "--args")
		args = append(args, playerArgs...)
	}
	args = append(args, url)
	l.logger.Info("using macOS 'open -a' to launch GUI app", "app", app, "args", args)
	return l.proc.Run("open", args...)
}

// launchDefault opens the URL with the system default handler
func (l *Launcher) launchDefault(url string) error {
	l.logger.Info("launching with system default", "os", l.goos, "url", url)
	switch l.goos {
	case "darwin":
		return l.proc.Start("open", url)
	case "windows":
		return l.proc.Start("cmd", "/c", "start", "", url)
	default:
		return l.proc.Start("xdg-open", url)
	}
}
