package models

// Project is a filter dimension for the board.
type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Collaborator is a person a task can be assigned to.
type Collaborator struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Department is an organizational unit a task can belong to.
type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
