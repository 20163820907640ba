package main

import "github.com/opsmesh/fabinv/cmd/fabinv/cmd"

func main() {
	cmd.Execute()
}
