package main

import "pdfchat/cmd/pdfchatctl/cmd"

func main() {
	cmd.Execute()
}
