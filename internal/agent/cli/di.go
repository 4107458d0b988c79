package cli

import (
	"github.com/aaronsummercloud/recipe-api-project/internal/agent/api"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = readPassword
)
