package main

import "crm/internal/commands"

func main() {
	commands.Execute()
}
