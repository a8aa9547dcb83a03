package main

import "github.com/fiveonefour/moosedocs/cmd"

func main() {
	cmd.Execute()
}
