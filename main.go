package main

import "github.com/gosain/tride/internal/cmd"

func main() {
	cmd.Execute()
}
