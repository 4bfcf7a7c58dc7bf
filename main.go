package main

import "helperkit/cmd"

func main() {
	cmd.Execute()
}
