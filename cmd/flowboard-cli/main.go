package main

import "flowboard/cmd/flowboard-cli/cmd"

func main() {
	cmd.Execute()
}
