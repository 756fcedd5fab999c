package main

import "github.com/schemix/circuitsim/cmd/circuitsim/cmd"

func main() {
	cmd.Execute()
}
