package main

import (
	"tunelytics/internal/cmd"
)

func main() {
	cmd.Run()
}
