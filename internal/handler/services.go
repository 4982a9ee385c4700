package handler

import (
	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/crmapi"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/port"
	"github.com/boddenberg/citadel-bfa-go/internal/service"

	"go.uber.org/zap"
)

// NewServices wires every domain action to the CRM client. userCache holds
// resolved current users; it may be in-memory or Redis backed.
func NewServices(api *crmapi.Client, userCache port.Cache[domain.User], metrics *observability.Metrics, logger *zap.Logger) Services {
	dir := service.NewDirectory(api.Users(), userCache, metrics, logger)

	companies := api.Companies()
	opportunities := api.Opportunities()
	people := api.People()

	return Services{
		Directory:     dir,
		Workspace:     service.NewWorkspaceService(api.Workspaces(), api.Views(), api.Deals(), dir, metrics, logger),
		Companies:     service.NewCompanyService(companies, api.Workspaces(), dir, metrics, logger),
		People:        service.NewPersonService(people, dir, metrics, logger),
		Opportunities: service.NewOpportunityService(opportunities, dir, metrics, logger),
		Tasks:         service.NewTaskService(api.Tasks(), dir, metrics, logger),
		Notes: service.NewNoteService(map[service.NoteParent]port.NoteAPI{
			service.NotesOfCompany:     companies.Notes(),
			service.NotesOfPerson:      people.Notes(),
			service.NotesOfOpportunity: opportunities.Notes(),
		}, dir, metrics, logger),
		Kanban: service.NewKanbanService(api.Kanban(), dir, metrics, logger),
	}
}
