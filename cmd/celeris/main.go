package main

import "github.com/Alazar42/CelerisProjectStarter/internal/cli"

func main() {
	cli.Execute()
}
