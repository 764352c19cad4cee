package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Tasks
	AddTask       string `yaml:"add_task"`
	EditTask      string `yaml:"edit_task"`
	DeleteTask    string `yaml:"delete_task"`
	MoveTaskLeft  string `yaml:"move_task_left"`
	MoveTaskRight string `yaml:"move_task_right"`
	ViewTask      string `yaml:"view_task"`

	// Subtasks
	AddSubtask      string `yaml:"add_subtask"`
	RenameSubtask   string `yaml:"rename_subtask"`
	ToggleSubtask   string `yaml:"toggle_subtask"`
	DeleteSubtask   string `yaml:"delete_subtask"`
	MoveSubtaskUp   string `yaml:"move_subtask_up"`
	MoveSubtaskDown string `yaml:"move_subtask_down"`

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevTask   string `yaml:"prev_task"`
	NextTask   string `yaml:"next_task"`

	// Other
	Filter        string `yaml:"filter"`
	ManageCatalog string `yaml:"manage_catalog"`
	Refresh       string `yaml:"refresh"`
	ShowHelp      string `yaml:"show_help"`
	Logout        string `yaml:"logout"`
	Quit          string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Tasks
		AddTask:       "a",
		EditTask:      "e",
		DeleteTask:    "d",
		MoveTaskLeft:  "H",
		MoveTaskRight: "L",
		ViewTask:      " ",

		// Subtasks
		AddSubtask:      "s",
		RenameSubtask:   "r",
		ToggleSubtask:   "x",
		DeleteSubtask:   "X",
		MoveSubtaskUp:   "K",
		MoveSubtaskDown: "J",

		// Navigation
		PrevColumn: "h",
		NextColumn: "l",
		PrevTask:   "k",
		NextTask:   "j",

		// Other
		Filter:        "f",
		ManageCatalog: "C",
		Refresh:       "r",
		ShowHelp:      "?",
		Logout:        "ctrl+l",
		Quit:          "q",
	}
}

// applyDefaults fills in any unset key bindings
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.AddTask == "" {
		k.AddTask = defaults.AddTask
	}
	if k.EditTask == "" {
		k.EditTask = defaults.EditTask
	}
	if k.DeleteTask == "" {
		k.DeleteTask = defaults.DeleteTask
	}
	if k.MoveTaskLeft == "" {
		k.MoveTaskLeft = defaults.MoveTaskLeft
	}
	if k.MoveTaskRight == "" {
		k.MoveTaskRight = defaults.MoveTaskRight
	}
	if k.ViewTask == "" {
		k.ViewTask = defaults.ViewTask
	}
	if k.AddSubtask == "" {
		k.AddSubtask = defaults.AddSubtask
	}
	if k.RenameSubtask == "" {
		k.RenameSubtask = defaults.RenameSubtask
	}
	if k.ToggleSubtask == "" {
		k.ToggleSubtask = defaults.ToggleSubtask
	}
	if k.DeleteSubtask == "" {
		k.DeleteSubtask = defaults.DeleteSubtask
	}
	if k.MoveSubtaskUp == "" {
		k.MoveSubtaskUp = defaults.MoveSubtaskUp
	}
	if k.MoveSubtaskDown == "" {
		k.MoveSubtaskDown = defaults.MoveSubtaskDown
	}
	if k.PrevColumn == "" {
		k.PrevColumn = defaults.PrevColumn
	}
	if k.NextColumn == "" {
		k.NextColumn = defaults.NextColumn
	}
	if k.PrevTask == "" {
		k.PrevTask = defaults.PrevTask
	}
	if k.NextTask == "" {
		k.NextTask = defaults.NextTask
	}
	if k.Filter == "" {
		k.Filter = defaults.Filter
	}
	if k.ManageCatalog == "" {
		k.ManageCatalog = defaults.ManageCatalog
	}
	if k.Refresh == "" {
		k.Refresh = defaults.Refresh
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Logout == "" {
		k.Logout = defaults.Logout
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
