//go:build !windows

package main

// enableANSI is a no-op outside Windows; terminals handle ANSI escapes.
func enableANSI() {}
