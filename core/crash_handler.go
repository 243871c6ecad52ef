package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

var crashHandler atomic.Pointer[func(any)]

// SetCrashHandler installs the handler invoked for panics recovered by Go
// The handler is expected to restore the terminal and exit
func SetCrashHandler(fn func(any)) {
	if fn == nil {
		crashHandler.Store(nil)
		return
	}
	crashHandler.Store(&fn)
}

// HandleCrash routes a recovered panic to the installed handler
// Without a handler the stack is printed to stderr and the process exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if h := crashHandler.Load(); h != nil {
		(*h)(r)
		return
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
