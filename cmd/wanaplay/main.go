package main

import "github.com/nberard/wanaplay-booker/cmd"

func main() {
	cmd.Execute()
}
