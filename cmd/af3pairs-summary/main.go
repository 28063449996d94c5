// cmd/af3pairs-summary/main.go
package main

import (
	"af3pairs/internal/appshell"
	"af3pairs/internal/summaryapp"
)

func main() { appshell.Main(summaryapp.RunContext) }
