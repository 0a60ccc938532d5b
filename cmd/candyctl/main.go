package main

import "github.com/MikeSquared-Agency/Candyboard/internal/cli"

func main() {
	cli.Execute()
}
