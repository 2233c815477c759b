package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

// crashScreen is finalized before a crash report so the trace lands on a sane terminal
// Written by the main goroutine, read from any goSafe panic handler
var crashScreen atomic.Pointer[tcell.Screen]

func setCrashScreen(s tcell.Screen) {
	if s == nil {
		crashScreen.Store(nil)
		return
	}
	crashScreen.Store(&s)
}

// takeCrashScreen hands the registered screen to exactly one caller
func takeCrashScreen() tcell.Screen {
	if p := crashScreen.Swap(nil); p != nil {
		return *p
	}
	return nil
}

// handleCrash restores the terminal, prints the panic with its stack and exits
func handleCrash(r any) {
	if r == nil {
		return
	}
	if screen := takeCrashScreen(); screen != nil {
		screen.Fini()
	}

	fmt.Fprintf(os.Stderr, "\n\x1b[31mGLYPH-REVEAL CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// goSafe runs fn in a goroutine that reports panics through handleCrash
func goSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				handleCrash(r)
			}
		}()
		fn()
	}()
}
