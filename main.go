package main

import "github.com/frahmantamala/user-administration/cmd"

func main() {
	cmd.Execute()
}
