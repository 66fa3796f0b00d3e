package main

import "boothadmin/cmd/boothadmin/cmd"

func main() {
	cmd.Execute()
}
