package main

import "github.com/oshokin/go-template/cmd/buildstamp/cmd"

func main() {
	cmd.Execute()
}
