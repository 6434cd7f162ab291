package main

import "github.com/anyhttp/anyhttp/internal/cli"

func main() {
	cli.Execute()
}
