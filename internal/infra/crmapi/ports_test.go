package crmapi_test

import (
	"github.com/boddenberg/citadel-bfa-go/internal/infra/crmapi"
	"github.com/boddenberg/citadel-bfa-go/internal/port"
)

var (
	_ port.UserAPI        = (*crmapi.Users)(nil)
	_ port.WorkspaceAPI   = (*crmapi.Workspaces)(nil)
	_ port.DealAPI        = (*crmapi.Deals)(nil)
	_ port.CompanyAPI     = (*crmapi.Companies)(nil)
	_ port.OpportunityAPI = (*crmapi.Opportunities)(nil)
	_ port.PersonAPI      = (*crmapi.People)(nil)
	_ port.NoteAPI        = (*crmapi.Notes)(nil)
	_ port.TaskAPI        = (*crmapi.Tasks)(nil)
	_ port.KanbanAPI      = (*crmapi.Kanban)(nil)
	_ port.ViewAPI        = (*crmapi.Views)(nil)
	_ port.HealthChecker  = (*crmapi.Client)(nil)
)
