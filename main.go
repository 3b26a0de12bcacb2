package main

import "github.com/southpawriter02/rune-rust-sub041/cmd"

func main() {
	cmd.Execute()
}
