package main

import "github.com/madbrain/mdbook-codetags/cmd"

func main() {
	cmd.Execute()
}
