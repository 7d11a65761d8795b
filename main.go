package main

import "github.com/cmmoran/haxedts/cmd"

var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
