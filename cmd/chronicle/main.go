package main

import "github.com/chronicle-cli/chronicle/internal/cli"

func main() {
	cli.Execute()
}
