package mcp

import (
	"context"

	"github.com/lumeng/mindmirror/internal/domain/contact"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ContactResult represents a contact in tool output.
type ContactResult struct {
	ID        string `json:"id" jsonschema:"contact identifier"`
	Name      string `json:"name" jsonschema:"contact name"`
	Title     string `json:"title,omitempty" jsonschema:"job title"`
	Notes     string `json:"notes,omitempty" jsonschema:"free-form notes"`
	Tags      string `json:"tags,omitempty" jsonschema:"comma-separated tags"`
	Phone     string `json:"phone,omitempty" jsonschema:"phone number"`
	Email     string `json:"email,omitempty" jsonschema:"email address"`
	Address   string `json:"address,omitempty" jsonschema:"postal address"`
	Company   string `json:"company,omitempty" jsonschema:"company name"`
	CreatedAt string `json:"created_at" jsonschema:"creation time, RFC 3339"`
	UpdatedAt string `json:"updated_at" jsonschema:"last update time, RFC 3339"`
}

func toContactResult(c *contact.Contact) ContactResult {
	return ContactResult{
		ID:        c.ID,
		Name:      c.Name,
		Title:     c.Title,
		Notes:     c.Notes,
		Tags:      c.Tags,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Company:   c.Company,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

// ContactCreateInput represents the MCP tool input for contact creation.
type ContactCreateInput struct {
	Name    string `json:"name" jsonschema:"contact name"`
	Title   string `json:"title,omitempty" jsonschema:"optional job title"`
	Notes   string `json:"notes,omitempty" jsonschema:"optional notes"`
	Tags    string `json:"tags,omitempty" jsonschema:"optional comma-separated tags"`
	Phone   string `json:"phone,omitempty" jsonschema:"optional phone number"`
	Email   string `json:"email,omitempty" jsonschema:"optional email address"`
	Address string `json:"address,omitempty" jsonschema:"optional postal address"`
	Company string `json:"company,omitempty" jsonschema:"optional company name"`
}

// ContactUpdateInput represents the MCP tool input for contact updates.
type ContactUpdateInput struct {
	ID      string `json:"id" jsonschema:"contact identifier"`
	Name    string `json:"name" jsonschema:"contact name"`
	Title   string `json:"title,omitempty" jsonschema:"job title"`
	Notes   string `json:"notes,omitempty" jsonschema:"notes"`
	Tags    string `json:"tags,omitempty" jsonschema:"comma-separated tags"`
	Phone   string `json:"phone,omitempty" jsonschema:"phone number"`
	Email   string `json:"email,omitempty" jsonschema:"email address"`
	Address string `json:"address,omitempty" jsonschema:"postal address"`
	Company string `json:"company,omitempty" jsonschema:"company name"`
}

// ContactGetInput identifies a single contact.
type ContactGetInput struct {
	ID string `json:"id" jsonschema:"contact identifier"`
}

// ContactListInput has no parameters.
type ContactListInput struct{}

// ContactListResult represents the MCP tool output for contact listings.
type ContactListResult struct {
	Contacts []ContactResult `json:"contacts"`
}

// ContactLinkInput attaches a contact to a project.
type ContactLinkInput struct {
	ProjectID string `json:"project_id" jsonschema:"project identifier"`
	ContactID string `json:"contact_id" jsonschema:"contact identifier"`
	Role      string `json:"role,omitempty" jsonschema:"optional role within the project"`
	Notes     string `json:"notes,omitempty" jsonschema:"optional notes about the involvement"`
}

// ContactUnlinkInput detaches a contact from a project.
type ContactUnlinkInput struct {
	ProjectID string `json:"project_id" jsonschema:"project identifier"`
	ContactID string `json:"contact_id" jsonschema:"contact identifier"`
}

// LinkResult acknowledges a link change.
type LinkResult struct {
	Status string `json:"status" jsonschema:"operation outcome"`
}

// ProjectContactsInput identifies the project whose contacts to list.
type ProjectContactsInput struct {
	ProjectID string `json:"project_id" jsonschema:"project identifier"`
}

// ProjectContactEntry pairs a contact with its role in the project.
type ProjectContactEntry struct {
	Contact ContactResult `json:"contact"`
	Role    string        `json:"role,omitempty" jsonschema:"role within the project"`
	Notes   string        `json:"notes,omitempty" jsonschema:"notes about the involvement"`
}

// ProjectContactsResult lists a project's contacts with roles.
type ProjectContactsResult struct {
	Contacts []ProjectContactEntry `json:"contacts"`
}

func contactCreateHandler(svc ContactService) sdkmcp.ToolHandlerFor[ContactCreateInput, ContactResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ContactCreateInput) (*sdkmcp.CallToolResult, ContactResult, error) {
		c, err := svc.Create(ctx, contact.CreateRequest{
			Name:    input.Name,
			Title:   input.Title,
			Notes:   input.Notes,
			Tags:    input.Tags,
			Phone:   input.Phone,
			Email:   input.Email,
			Address: input.Address,
			Company: input.Company,
		})
		if err != nil {
			return nil, ContactResult{}, MapError(err)
		}
		return nil, toContactResult(c), nil
	}
}

func contactUpdateHandler(svc ContactService) sdkmcp.ToolHandlerFor[ContactUpdateInput, ContactResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ContactUpdateInput) (*sdkmcp.CallToolResult, ContactResult, error) {
		c, err := svc.Update(ctx, contact.UpdateRequest{
			ID:      input.ID,
			Name:    input.Name,
			Title:   input.Title,
			Notes:   input.Notes,
			Tags:    input.Tags,
			Phone:   input.Phone,
			Email:   input.Email,
			Address: input.Address,
			Company: input.Company,
		})
		if err != nil {
			return nil, ContactResult{}, MapError(err)
		}
		return nil, toContactResult(c), nil
	}
}

func contactGetHandler(svc ContactService) sdkmcp.ToolHandlerFor[ContactGetInput, ContactResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ContactGetInput) (*sdkmcp.CallToolResult, ContactResult, error) {
		c, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, ContactResult{}, MapError(err)
		}
		return nil, toContactResult(c), nil
	}
}

func contactListHandler(svc ContactService) sdkmcp.ToolHandlerFor[ContactListInput, ContactListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ContactListInput) (*sdkmcp.CallToolResult, ContactListResult, error) {
		contacts, err := svc.List(ctx)
		if err != nil {
			return nil, ContactListResult{}, MapError(err)
		}
		result := ContactListResult{Contacts: make([]ContactResult, len(contacts))}
		for i := range contacts {
			result.Contacts[i] = toContactResult(&contacts[i])
		}
		return nil, result, nil
	}
}

func contactLinkHandler(svc ContactService) sdkmcp.ToolHandlerFor[ContactLinkInput, LinkResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ContactLinkInput) (*sdkmcp.CallToolResult, LinkResult, error) {
		if err := svc.LinkToProject(ctx, input.ProjectID, input.ContactID, input.Role, input.Notes); err != nil {
			return nil, LinkResult{}, MapError(err)
		}
		return nil, LinkResult{Status: "linked"}, nil
	}
}

func contactUnlinkHandler(svc ContactService) sdkmcp.ToolHandlerFor[ContactUnlinkInput, LinkResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ContactUnlinkInput) (*sdkmcp.CallToolResult, LinkResult, error) {
		if err := svc.UnlinkFromProject(ctx, input.ProjectID, input.ContactID); err != nil {
			return nil, LinkResult{}, MapError(err)
		}
		return nil, LinkResult{Status: "unlinked"}, nil
	}
}

func projectContactsHandler(svc ContactService) sdkmcp.ToolHandlerFor[ProjectContactsInput, ProjectContactsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ProjectContactsInput) (*sdkmcp.CallToolResult, ProjectContactsResult, error) {
		links, err := svc.ListForProject(ctx, input.ProjectID)
		if err != nil {
			return nil, ProjectContactsResult{}, MapError(err)
		}
		result := ProjectContactsResult{Contacts: make([]ProjectContactEntry, len(links))}
		for i := range links {
			result.Contacts[i] = ProjectContactEntry{
				Contact: toContactResult(&links[i].Contact),
				Role:    links[i].Role,
				Notes:   links[i].Notes,
			}
		}
		return nil, result, nil
	}
}

func registerContactTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "contact_create",
		Description: "Creates a new contact",
	}, contactCreateHandler(svcs.Contacts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "contact_update",
		Description: "Updates a contact's details",
	}, contactUpdateHandler(svcs.Contacts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "contact_get",
		Description: "Returns a single contact by ID",
	}, contactGetHandler(svcs.Contacts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "contact_list",
		Description: "Lists all contacts, newest first",
	}, contactListHandler(svcs.Contacts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "contact_link_project",
		Description: "Links a contact to a project with an optional role",
	}, contactLinkHandler(svcs.Contacts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "contact_unlink_project",
		Description: "Removes a contact's link to a project",
	}, contactUnlinkHandler(svcs.Contacts))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_contacts",
		Description: "Lists a project's contacts with their roles",
	}, projectContactsHandler(svcs.Contacts))
}
