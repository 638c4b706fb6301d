package main

import "github.com/dotcommander/essayscore/cmd"

func main() {
	cmd.Execute()
}
