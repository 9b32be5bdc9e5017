package main

import "github.com/radworks/radchat/cmd"

func main() {
	cmd.Execute()
}
