package main

import "github.com/inovacc/envsync/cmd"

func main() {
	cmd.Execute()
}
