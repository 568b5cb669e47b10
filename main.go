package main

import "boardkeeper/cmd"

func main() {
	cmd.Execute()
}
