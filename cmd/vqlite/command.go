package main

import "strings"

// handleMetaCommand recognizes the dot-commands. Only ".exit" exists for
// this core; anything else is reported and the loop continues.
func handleMetaCommand(line string) bool {
	return strings.TrimSpace(line) == ".exit"
}
