package main

import "github.com/darmiel/voxauth/cmd"

func main() {
	cmd.Execute()
}
