package domain

import "time"

// ============================================================
// Users / Workspaces
// ============================================================

// User is the CRM record of a signed-in user. ClerkID is the identity
// provider's user id and equals Session.UserID.
type User struct {
	ID        int64         `json:"id"`
	ClerkID   string        `json:"clerk_id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	Workspace *WorkspaceRef `json:"company_details,omitempty"`
}

// WorkspaceRef is the short workspace reference embedded in a user record.
type WorkspaceRef struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// WorkspaceID returns the uuid of the user's workspace, or "" when the user
// has none.
func (u *User) WorkspaceID() string {
	if u == nil || u.Workspace == nil {
		return ""
	}
	return u.Workspace.UUID
}

// Workspace is a tenant grouping companies, people and opportunities.
type Workspace struct {
	ID   int64  `json:"id"`
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// Deal is a legacy pipeline entity still exposed by the CRM.
type Deal struct {
	ID    int64   `json:"id"`
	UUID  string  `json:"uuid"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Stage string  `json:"stage"`
}

// Note is free text attached to a company, person or opportunity.
type Note struct {
	ID          int64     `json:"id"`
	UUID        string    `json:"uuid"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created"`
}

// Task is a to-do item in a workspace.
type Task struct {
	ID          int64      `json:"id"`
	UUID        string     `json:"uuid"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
}

// TaskDetails is a task with its related entities resolved.
type TaskDetails struct {
	Task
	Company     *Company     `json:"company,omitempty"`
	Person      *Person      `json:"person,omitempty"`
	Opportunity *Opportunity `json:"opportunity,omitempty"`
}

// SidebarView is a saved view (favorite) shown in the sidebar.
type SidebarView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Section string `json:"section"`
}

// SidebarSections groups a user's views by section id.
type SidebarSections map[string][]SidebarView

// KanbanColumn is one stage column of the opportunity board.
type KanbanColumn struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// StageMove moves one kanban card to a stage.
type StageMove struct {
	ID    string `json:"id"`
	Stage string `json:"stage"`
}

// ReorderResult is returned by the column reorder endpoint.
type ReorderResult struct {
	Success bool `json:"success"`
}
