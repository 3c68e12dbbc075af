package main

import "github.com/bookcook/api/internal/cli"

func main() {
	cli.Execute()
}
