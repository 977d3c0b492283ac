package main

import "pgtadash/cmd"

func main() {
	cmd.Execute()
}
