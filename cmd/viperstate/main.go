package main

import "github.com/viperproject/viper-ide-sub004/internal/cli"

func main() {
	cli.Execute()
}
