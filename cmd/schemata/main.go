package main

import "github.com/persistx/schemata/internal/cli"

func main() {
	cli.Execute()
}
