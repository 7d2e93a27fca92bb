package main

import "github.com/vietdv277/rdsctl/cmd"

func main() {
	cmd.Execute()
}
