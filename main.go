package main

import "github.com/rocketdigital/taskpilot/cmd"

func main() {
	cmd.Execute()
}
