package main

import "github.com/genomelab/gmdedup/cmd/gmdedup/cmd"

func main() {
	cmd.Run()
}
