package main

import "tool-compare-data/cmd"

func main() {
	cmd.Execute()
}
