/*
Package main is vsprofile, a command line manager for proxy profiles: it imports share links
and subscriptions into a local store, lists and exports the stored profiles and refreshes
subscription groups.

	vsprofile [flags] <command> [args]

Run with -h to see the flags and commands.
*/
package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/e1732a364fed/vs_profile/bean"
)

const (
	desc      = "Versioned proxy profile store and share link converter\n"
	delimiter = "===============================\n"
)

var Version string = "[version_undefined]" //版本号可由 -ldflags "-X 'main.Version=v1.x.x'" 指定

func versionStr() string {
	return fmt.Sprintf("vsprofile %s, %s %s %s\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func printVersion_simple(w io.StringWriter) {
	w.WriteString(versionStr())
}

func printVersion(w io.StringWriter) {
	w.WriteString(delimiter)
	printVersion_simple(w)
	w.WriteString(delimiter)
	w.WriteString(desc)
	w.WriteString("Kinds: " + strings.Join(bean.AllKindNames(), ", ") + "\n")
	w.WriteString(delimiter)
}
