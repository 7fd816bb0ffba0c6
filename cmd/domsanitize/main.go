package main

import "github.com/njchilds90/domsanitizer/cmd/domsanitize/cmd"

func main() {
	cmd.Execute()
}
