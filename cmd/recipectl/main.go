// Package main содержит точку входа консольного клиента recipectl.
//
// Версия и дата сборки передаются через -ldflags:
//
//	go build -ldflags "-X main.buildVersion=1.0.0 -X main.buildDate=2026-10-19" ./cmd/recipectl
package main

import "github.com/aaronsummercloud/recipe-api-project/internal/agent/cli"

var (
	// buildVersion — версия приложения, по умолчанию "dev".
	buildVersion = "dev"
	// buildDate — дата сборки, по умолчанию "unknown".
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
