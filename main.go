package main

import "github.com/roasbeef/remerge/commands"

func main() {
	commands.Execute()
}
