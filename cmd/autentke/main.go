package main

import "github.com/autentke/autentke/cmd/autentke/commands"

func main() {
	commands.Execute()
}
