package main

import "github.com/taskforge/taskforge/cmd/taskforged/cmd"

func main() {
	cmd.Execute()
}
