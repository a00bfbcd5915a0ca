package main

import "config-updater/cmd"

func main() {
	cmd.Execute()
}
