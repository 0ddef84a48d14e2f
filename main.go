package main

import "github.com/Bitlatte/spade/cmd"

func main() {
	cmd.Execute()
}
