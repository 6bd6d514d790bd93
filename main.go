package main

import "github.com/fakeyudi/clausesense/cmd"

func main() {
	cmd.Execute()
}
