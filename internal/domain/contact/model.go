package contact

import "time"

// Contact is a person tracked in the journal
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Tags      string    `json:"tags,omitempty"` // comma-separated
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectLink carries a contact's role within a specific project
type ProjectLink struct {
	Contact Contact `json:"contact"`
	Role    string  `json:"role,omitempty"`
	Notes   string  `json:"notes,omitempty"`
}
