package main

import "facilitiesdesk/keydesk/cmd"

func main() {
	cmd.Execute()
}
