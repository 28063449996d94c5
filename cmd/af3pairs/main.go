// cmd/af3pairs/main.go
package main

import (
	"af3pairs/internal/app"
	"af3pairs/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
