package main

import "github.com/example/poi-reserve/cmd"

func main() {
	cmd.Execute()
}
