package main

import "github.com/tessro/scrub/internal/cli"

func main() {
	cli.Execute()
}
