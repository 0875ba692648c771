package main

import "storefront-catalog/internal/cli"

func main() {
	cli.Execute()
}
