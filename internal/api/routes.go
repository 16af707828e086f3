package api

import "github.com/darmiel/voxauth/pkg/client"

const (
	HealthCheckRoute = client.HealthRoute
	AboutRoute       = client.AboutRoute

	TokenRoute        = client.TokenRoute
	ResolveTokenRoute = client.ResolveTokenRoute

	AdminParent           = "/v1/admin/"
	ListAuditsRoute       = client.ListAuditsRoute
	ListActiveTokensRoute = client.ListActiveTokensRoute

	ListTasksRoute   = AdminParent + "tasks"
	TriggerTaskRoute = ListTasksRoute + "/{name}/trigger"
	LogsForTaskRoute = ListTasksRoute + "/{name}/logs"
)
