package main

import "github.com/PakBeast/PakBeast/cmd/pakbeast/cmd"

// main is the entrypoint for the pakbeast command line tool.
func main() {
	cmd.Execute()
}
