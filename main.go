package main

import "studio-backend/cmd"

func main() {
	cmd.Run()
}
