package main

import "github.com/cmmoran/langgen/cmd"

func main() {
	cmd.Execute()
}
