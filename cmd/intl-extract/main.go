package main

import "github.com/mvp-joe/intl-extract/internal/cli"

func main() {
	cli.Execute()
}
