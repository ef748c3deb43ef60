package models

// CommandsConfig represents the "commands" section of config.yaml.
type CommandsConfig struct {
	Auth AuthConfig `json:"auth" mapstructure:"auth"`
}

// AuthConfig lists role IDs that grant moderator access on top of the
// Discord permission check.
type AuthConfig struct {
	AdminsRoles []string `json:"admins_roles" mapstructure:"admins_roles"`
}
