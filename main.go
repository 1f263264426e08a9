package main

import "github.com/username/fraudsight/cmd"

func main() {
	cmd.Execute()
}
