//go:build unix && !arcstr_panicabort

package abort

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// exitCode matches the status a shell reports for a process killed by SIGABRT.
const exitCode = 134

// gracePeriod bounds how long we wait for the runtime to act on SIGABRT.
const gracePeriod = 2 * time.Second

func terminate() {
	// The Go runtime turns an uncaught SIGABRT into a crash with goroutine dumps.
	_ = unix.Kill(unix.Getpid(), unix.SIGABRT)

	// Reached only if the signal was intercepted by signal.Notify.
	time.Sleep(gracePeriod)
	os.Exit(exitCode)
}
