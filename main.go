package main

import "github.com/xidlesync/xidlesync/internal/cli"

var version = "0.1.0"

func main() {
	cli.Execute(version)
}
