package main

import "github.com/Memily89/smart-sales-memily89/cmd"

func main() {
	cmd.Execute()
}
