package main

import "github.com/MrEthical07/goGuard/cmd/goguard-demo/cmd"

func main() {
	cmd.Execute()
}
