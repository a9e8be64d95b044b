package main

import "vinylscan/cmd/server/cmd"

func main() {
	cmd.Execute()
}
