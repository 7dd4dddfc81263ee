package main

import "github.com/sysbio-curie/Neko-sub000/cmd/neko/commands"

func main() {
	commands.Execute()
}
