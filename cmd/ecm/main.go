package main

import "github.com/corridormap/ecm/cmd/ecm/cmd"

func main() {
	cmd.Execute()
}
