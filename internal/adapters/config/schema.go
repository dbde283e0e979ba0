package config

// Weldfile represents the structure of the weld.yaml configuration file.
type Weldfile struct {
	Version string               `yaml:"version"`
	Modules map[string]ModuleDTO `yaml:"modules"`
}

// ModuleDTO represents a module definition in the configuration.
type ModuleDTO struct {
	DependsOn []string          `yaml:"dependsOn"`
	Inputs    []string          `yaml:"inputs"`
	Deps      []DependencyDTO   `yaml:"deps"`
	Fragments map[string]string `yaml:"fragments"`
	Tool      ToolDTO           `yaml:"tool"`
}

// DependencyDTO represents a declared dependency fact in the configuration.
type DependencyDTO struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Kind    string `yaml:"kind"`
}

// ToolDTO represents the external tool binding for a module.
type ToolDTO struct {
	Command     string            `yaml:"command"`
	Args        []string          `yaml:"args"`
	Sources     []string          `yaml:"sources"`
	Environment map[string]string `yaml:"environment"`
}
