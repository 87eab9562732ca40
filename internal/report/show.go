package report

import (
	"log"
	"os"
	"os/exec"
	"runtime"

	"github.com/mattn/go-isatty"
)

// Hooks for tests.
var (
	isTerminal = func() bool {
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	lookPath     = exec.LookPath
	startCommand = func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	}
)

// opener returns the desktop command that opens a file on goos.
func opener(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "cmd", []string{"/c", "start", ""}
	default:
		return "xdg-open", nil
	}
}

// Show opens path in the desktop image viewer without waiting for it. On a
// headless run (no terminal or no opener installed) it logs and returns nil.
func Show(path string) error {
	if !isTerminal() {
		log.Printf("report: show skipped, stdout is not a terminal path=%s", path)
		return nil
	}
	name, args := opener(runtime.GOOS)
	if _, err := lookPath(name); err != nil {
		log.Printf("report: show skipped, %s not found path=%s", name, path)
		return nil
	}
	return startCommand(name, append(args, path)...)
}
