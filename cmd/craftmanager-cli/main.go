package main

import "craftmanager/cmd/craftmanager-cli/cmd"

func main() {
	cmd.Execute()
}
