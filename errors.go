package dust

import "fmt"

// ConfigurationError reports invalid render constants or a broken
// vertex/instance stream contract. It is raised at setup time, before any
// draw is issued, and is fatal to that configuration attempt only.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("dust: configuration error: %s: %s", e.Field, e.Reason)
}

func configErrorf(field string, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// TemplateError reports a failed template parameterization: a required
// placeholder missing from the template or substitution map, a value that is
// not valid float literal text, or substituted source the WGSL front-end
// rejects. Recoverable by fixing the substitution and retrying.
type TemplateError struct {
	Placeholder string
	Reason      string
}

func (e *TemplateError) Error() string {
	if e.Placeholder == "" {
		return fmt.Sprintf("dust: template error: %s", e.Reason)
	}
	return fmt.Sprintf("dust: template error: %s: %s", e.Placeholder, e.Reason)
}

func templateErrorf(placeholder string, format string, args ...any) *TemplateError {
	return &TemplateError{Placeholder: placeholder, Reason: fmt.Sprintf(format, args...)}
}
