package main

import "github.com/undocked/timekeep/cmd"

func main() {
	cmd.Execute()
}
