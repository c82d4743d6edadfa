// Package main 是命令行客户端的入口点
package main

import "ia-chat/internal/cli/cmd"

func main() {
	cmd.Execute()
}
