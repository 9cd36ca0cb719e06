package main

import "github.com/gastoctl/gastoctl/cmd"

func main() {
	cmd.Execute()
}
