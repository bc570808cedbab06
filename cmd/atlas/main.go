package main

import "github.com/blacksmith/atlas/cmd"

func main() {
	cmd.Execute()
}
