package main

import "github.com/pulumi/schema-diff/cmd"

func main() {
	cmd.Execute()
}
