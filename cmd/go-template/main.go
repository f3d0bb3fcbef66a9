package main

import "github.com/oshokin/go-template/cmd/go-template/cmd"

func main() {
	cmd.Execute()
}
