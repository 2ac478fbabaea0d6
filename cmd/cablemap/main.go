package main

import "cablemap/cmd/cablemap/cmd"

func main() {
	cmd.Execute()
}
