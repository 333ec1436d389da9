// Package main (cmd/waitrun) is the simple entrypoint variant: delay, then
// exec. Used for instances that receive already-canonical secrets directly
// from the platform and need no name mapping, only the staggered start.
//
//	waitrun --startup-delay=20 -- python main.py
package main
