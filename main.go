package main

import "github.com/inovacc/katasync/cmd"

func main() {
	cmd.Execute()
}
