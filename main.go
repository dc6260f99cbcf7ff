package main

import "ouiplayer/cmd"

func main() {
	cmd.Execute()
}
