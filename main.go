package main

import "github.com/hmans/bookshelf/cmd"

func main() {
	cmd.Execute()
}
