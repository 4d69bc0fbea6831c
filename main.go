package main

import "github.com/shopetl/shopetl/cmd"

func main() {
	cmd.Execute()
}
