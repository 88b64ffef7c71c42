package config

// DynVariable is a placeholder token and the text that replaces it in a query.
type DynVariable struct {
	Placeholder string
	Value       string
}

// Placeholder wraps a variable name in the ${name} query syntax.
func Placeholder(name string) string {
	return "${" + name + "}"
}

// DynVariables derives the substitution pairs from the variables section.
func (c Config) DynVariables() []DynVariable {
	out := make([]DynVariable, 0, len(c.Variables))
	for _, v := range c.Variables {
		out = append(out, DynVariable{Placeholder: Placeholder(v.Name), Value: v.Value})
	}
	return out
}
