package main

import "github.com/preston-bernstein/pyramid-service/internal/cli"

func main() {
	cli.Execute()
}
