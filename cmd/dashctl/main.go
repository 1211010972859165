package main

import "blogcanvas/cmd/dashctl/cmd"

func main() {
	cmd.Execute()
}
